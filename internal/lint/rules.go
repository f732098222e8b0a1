package lint

import (
	"errors"
	"fmt"
	"regexp"

	lru "github.com/hashicorp/golang-lru/v2"
)

// ErrInvalidPattern is matched by every *PatternError.
var ErrInvalidPattern = errors.New("invalid pattern")

// PatternError reports a rule pattern that failed to compile.
type PatternError struct {
	Kind    string
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid %s regex `%s`: %v", e.Kind, e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }

func (e *PatternError) Is(target error) bool { return target == ErrInvalidPattern }

const defaultCacheSize = 256

// Compiler builds rules and memoises compiled expressions. A Compiler is
// safe for concurrent use.
type Compiler struct {
	cache *lru.Cache[string, *regexp.Regexp]
}

// NewCompiler returns a Compiler holding at most size compiled patterns.
// A non-positive size selects the default.
func NewCompiler(size int) *Compiler {
	if size <= 0 {
		size = defaultCacheSize
	}
	cache, err := lru.New[string, *regexp.Regexp](size)
	if err != nil {
		// only returned for non-positive sizes
		panic(err)
	}
	return &Compiler{cache: cache}
}

var defaultCompiler = NewCompiler(defaultCacheSize)

func (c *Compiler) compile(kind, pattern string) (*regexp.Regexp, error) {
	if re, ok := c.cache.Get(pattern); ok {
		return re, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, &PatternError{Kind: kind, Pattern: pattern, Err: err}
	}
	c.cache.Add(pattern, re)
	return re, nil
}

// Header compiles the pattern the header line must satisfy.
func (c *Compiler) Header(pattern, description string) (*HeaderPattern, error) {
	re, err := c.compile("message pattern", pattern)
	if err != nil {
		return nil, err
	}
	return &HeaderPattern{Regex: re, Description: description}, nil
}

// Exclude compiles a pattern that must not appear anywhere in a message.
func (c *Compiler) Exclude(pattern, message string) (ExcludeRule, error) {
	re, err := c.compile("exclude", pattern)
	if err != nil {
		return ExcludeRule{}, err
	}
	return ExcludeRule{Regex: re, Message: message, Pattern: pattern}, nil
}

// Cleanup compiles a find/replace rewrite. replace is used literally.
func (c *Compiler) Cleanup(find, replace, description string) (CleanupRule, error) {
	re, err := c.compile("cleanup", find)
	if err != nil {
		return CleanupRule{}, err
	}
	return CleanupRule{Regex: re, Replace: replace, Description: description, Pattern: find}, nil
}

// CompileHeader compiles a header pattern with the shared compiler.
func CompileHeader(pattern, description string) (*HeaderPattern, error) {
	return defaultCompiler.Header(pattern, description)
}

// CompileExclude compiles an exclude rule with the shared compiler.
func CompileExclude(pattern, message string) (ExcludeRule, error) {
	return defaultCompiler.Exclude(pattern, message)
}

// CompileCleanup compiles a cleanup rule with the shared compiler.
func CompileCleanup(find, replace, description string) (CleanupRule, error) {
	return defaultCompiler.Cleanup(find, replace, description)
}

func (r ExcludeRule) violation() string {
	if r.Message != "" {
		return r.Message
	}
	return fmt.Sprintf("Commit message matches excluded pattern `%s`", r.Pattern)
}

func (r CleanupRule) summary() string {
	if r.Description != "" {
		return r.Description
	}
	return fmt.Sprintf("Applied cleanup `%s`", r.Pattern)
}
