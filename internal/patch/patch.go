package patch

import (
	"bufio"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"mime/quotedprintable"
	"net/mail"
	"regexp"
	"strings"

	"github.com/emersion/go-mbox"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// Patch is one message of a format-patch series.
type Patch struct {
	Index   int    `json:"index"`
	From    string `json:"from,omitempty"`
	Subject string `json:"subject"`

	// Message is the commit message git am would record: the subject
	// without its [PATCH] prefix, a blank line, and the body up to the
	// "---" diffstat separator.
	Message string `json:"-"`
}

var subjectPrefix = regexp.MustCompile(`^(?:\s*\[[^\]]*\])+\s*`)

// ReadSeries reads every message of an mbox stream such as the output of
// "git format-patch --stdout".
func ReadSeries(r io.Reader) ([]Patch, error) {
	decoder := &mime.WordDecoder{CharsetReader: charsetReader}
	reader := mbox.NewReader(r)

	var patches []Patch
	for i := 0; ; i++ {
		raw, err := reader.NextMessage()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading message %d: %w", i+1, err)
		}

		msg, err := mail.ReadMessage(raw)
		if err != nil {
			return nil, fmt.Errorf("parsing message %d: %w", i+1, err)
		}

		subject := msg.Header.Get("Subject")
		if decoded, err := decoder.DecodeHeader(subject); err == nil {
			subject = decoded
		}
		subject = strings.TrimSpace(subjectPrefix.ReplaceAllString(subject, ""))

		from := msg.Header.Get("From")
		if decoded, err := decoder.DecodeHeader(from); err == nil {
			from = decoded
		}

		body, err := readBody(msg)
		if err != nil {
			return nil, fmt.Errorf("reading body of message %d: %w", i+1, err)
		}

		patches = append(patches, Patch{
			Index:   i + 1,
			From:    from,
			Subject: subject,
			Message: commitMessage(subject, body),
		})
	}
	return patches, nil
}

func readBody(msg *mail.Message) (string, error) {
	var body io.Reader = msg.Body
	switch strings.ToLower(strings.TrimSpace(msg.Header.Get("Content-Transfer-Encoding"))) {
	case "base64":
		body = base64.NewDecoder(base64.StdEncoding, body)
	case "quoted-printable":
		body = quotedprintable.NewReader(body)
	}

	if _, params, err := mime.ParseMediaType(msg.Header.Get("Content-Type")); err == nil {
		if r, err := charsetReader(params["charset"], body); err == nil {
			body = r
		}
	}

	var lines []string
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "---" {
			break
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return strings.Trim(strings.Join(lines, "\n"), "\n"), nil
}

func commitMessage(subject, body string) string {
	if strings.TrimSpace(body) == "" {
		return subject + "\n"
	}
	return subject + "\n\n" + body + "\n"
}

func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	if charset == "" {
		return input, nil
	}
	enc, err := ianaindex.IANA.Encoding(strings.ToLower(charset))
	if err != nil || enc == nil {
		return input, nil
	}
	return transform.NewReader(input, enc.NewDecoder()), nil
}
