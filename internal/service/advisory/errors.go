package advisory

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/sony/gobreaker"
	"google.golang.org/genai"

	"github.com/mamadbah2/feedration/pkg/clients/anthropic"
)

// Kind groups advisory failures by what the caller can do about them.
type Kind int

const (
	KindGeneric Kind = iota
	KindQuota
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindQuota:
		return "quota"
	case KindServer:
		return "server"
	default:
		return "generic"
	}
}

// Error is returned by every Advisor operation that fails.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("advisory %s error: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("advisory %s error: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Retryable reports whether trying again later may succeed.
func (e *Error) Retryable() bool {
	return e.Kind == KindQuota || e.Kind == KindServer
}

var (
	quotaMessage  = "model usage quota reached, wait a minute and try again"
	serverMessage = "model provider is temporarily unavailable, try again later"
)

// Classify maps a transport error onto an *Error. Errors that already are *Error
// are returned unchanged.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}

	var advErr *Error
	if errors.As(err, &advErr) {
		return advErr
	}

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return &Error{Kind: KindServer, Message: serverMessage, Err: err}
	}

	var genaiErr genai.APIError
	if errors.As(err, &genaiErr) {
		return fromStatus(genaiErr.Code, genaiErr.Status, err)
	}
	var genaiPtr *genai.APIError
	if errors.As(err, &genaiPtr) && genaiPtr != nil {
		return fromStatus(genaiPtr.Code, genaiPtr.Status, err)
	}

	var anthErr *anthropic.APIError
	if errors.As(err, &anthErr) {
		return fromStatus(anthErr.StatusCode, anthErr.Type, err)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindServer, Message: serverMessage, Err: err}
	}

	msg := err.Error()
	switch {
	case quotaText.MatchString(msg):
		return &Error{Kind: KindQuota, Message: quotaMessage, Err: err}
	case serverText.MatchString(msg):
		return &Error{Kind: KindServer, Message: serverMessage, Err: err}
	}
	return &Error{Kind: KindGeneric, Message: "model request failed", Err: err}
}

// Status codes in untyped transport errors, matched as whole numbers so "1500" or
// "500ms" do not count.
var (
	quotaText  = regexp.MustCompile(`\b429\b|RESOURCE_EXHAUSTED`)
	serverText = regexp.MustCompile(`\b5[0-9]{2}\b`)
)

func fromStatus(code int, status string, err error) *Error {
	switch {
	case code == 429 || status == "RESOURCE_EXHAUSTED" || status == "rate_limit_error":
		return &Error{Kind: KindQuota, Message: quotaMessage, Err: err}
	case code >= 500:
		return &Error{Kind: KindServer, Message: serverMessage, Err: err}
	}
	return &Error{Kind: KindGeneric, Message: "model request failed", Err: err}
}

// failurePrefixes are reply openings that signal a failure instead of content.
// Gateways in front of the model answer in English or Turkish.
var failurePrefixes = []struct {
	prefix string
	kind   Kind
}{
	{"KOTA HATASI:", KindQuota},
	{"SUNUCU HATASI:", KindServer},
	{"HATA:", KindGeneric},
	{"ERROR:", KindGeneric},
}

// checkReply rejects empty replies and replies that start with a failure prefix.
func checkReply(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", &Error{Kind: KindGeneric, Message: "model returned an empty reply"}
	}
	upper := strings.ToUpper(text)
	for _, p := range failurePrefixes {
		if strings.HasPrefix(upper, p.prefix) {
			return "", &Error{Kind: p.kind, Message: strings.TrimSpace(text[len(p.prefix):])}
		}
	}
	return text, nil
}
