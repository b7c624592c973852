package chatclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tidwall/gjson"

	"github.com/linanwx/chatwidget/devserver"
	"github.com/linanwx/chatwidget/widget"
)

func TestReplySendsContract(t *testing.T) {
	var gotMethod, gotPath, gotType, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath, gotType = r.Method, r.URL.Path, r.Header.Get("Content-Type")
		data, _ := io.ReadAll(r.Body)
		gotBody = string(data)
		_, _ = w.Write([]byte(`{"reply":"hi there","extra":1}`))
	}))
	defer srv.Close()

	reply, err := New(srv.URL + "/").Reply(context.Background(), `say "hi" <b>`)
	if err != nil {
		t.Fatalf("Reply() error = %v", err)
	}
	if reply != "hi there" {
		t.Fatalf("Reply() = %q, want %q", reply, "hi there")
	}
	if gotMethod != http.MethodPost || gotPath != "/chat" || gotType != "application/json" {
		t.Fatalf("request = %s %s (%s)", gotMethod, gotPath, gotType)
	}
	parsed := gjson.Parse(gotBody)
	if got := parsed.Get("message").String(); got != `say "hi" <b>` {
		t.Fatalf("body message = %q", got)
	}
	if n := len(parsed.Map()); n != 1 {
		t.Fatalf("body has %d keys, want 1: %s", n, gotBody)
	}
}

func TestReplyFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `{"reply":"should not show"}`},
		{"not found", http.StatusNotFound, `not found`},
		{"invalid json", http.StatusOK, `{"reply":`},
		{"html body", http.StatusOK, `<html>oops</html>`},
		{"array body", http.StatusOK, `["reply"]`},
		{"missing reply", http.StatusOK, `{"answer":"x"}`},
		{"numeric reply", http.StatusOK, `{"reply":42}`},
		{"null reply", http.StatusOK, `{"reply":null}`},
		{"object reply", http.StatusOK, `{"reply":{"text":"x"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			reply, err := New(srv.URL).Reply(context.Background(), "hi")
			if !errors.Is(err, widget.ErrReplyFetchFailed) {
				t.Fatalf("Reply() error = %v, want ErrReplyFetchFailed", err)
			}
			if reply != "" {
				t.Fatalf("Reply() = %q, want empty", reply)
			}
		})
	}
}

func TestReplyTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url).Reply(context.Background(), "hi")
	if !errors.Is(err, widget.ErrReplyFetchFailed) {
		t.Fatalf("Reply() error = %v, want ErrReplyFetchFailed", err)
	}
}

func TestReplyEmptyStringIsSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"reply":""}`))
	}))
	defer srv.Close()

	reply, err := New(srv.URL).Reply(context.Background(), "hi")
	if err != nil || reply != "" {
		t.Fatalf("Reply() = %q, %v; want empty reply without error", reply, err)
	}
}

func TestWithPathAndTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		<-release
		_, _ = w.Write([]byte(`{"reply":"late"}`))
	}))
	defer srv.Close()
	defer close(release)

	c := New(srv.URL, WithPath("api/chat"), WithTimeout(50*time.Millisecond))
	if c.Endpoint() != srv.URL+"/api/chat" {
		t.Fatalf("Endpoint() = %q", c.Endpoint())
	}
	if _, err := c.Reply(context.Background(), "hi"); !errors.Is(err, widget.ErrReplyFetchFailed) {
		t.Fatalf("Reply() error = %v, want timeout wrapped in ErrReplyFetchFailed", err)
	}
}

func TestReplyRejectsOversizedBody(t *testing.T) {
	big := strings.Repeat("a", 2<<20)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"reply":"` + big + `"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Reply(context.Background(), "hi")
	if !errors.Is(err, widget.ErrReplyFetchFailed) || !errors.Is(err, ErrResponseTooLarge) {
		t.Fatalf("Reply() error = %v, want ErrReplyFetchFailed and ErrResponseTooLarge", err)
	}
}

func TestReplyAcceptsBodyAtLimit(t *testing.T) {
	filler := strings.Repeat("a", maxBodyBytes-len(`{"reply":""}`))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"reply":"` + filler + `"}`))
	}))
	defer srv.Close()

	reply, err := New(srv.URL).Reply(context.Background(), "hi")
	if err != nil {
		t.Fatalf("Reply() error = %v", err)
	}
	if len(reply) != len(filler) {
		t.Fatalf("len(reply) = %d, want %d", len(reply), len(filler))
	}
}

func TestReplyAgainstDevserver(t *testing.T) {
	srv := httptest.NewServer(devserver.NewMux("/chat", nil))
	defer srv.Close()

	reply, err := New(srv.URL).Reply(context.Background(), "ping")
	if err != nil {
		t.Fatalf("Reply() error = %v", err)
	}
	if reply != "You said: ping" {
		t.Fatalf("Reply() = %q", reply)
	}
}

func TestClientDrivesWidget(t *testing.T) {
	srv := httptest.NewServer(devserver.NewMux("/chat", func(_ context.Context, msg string) (string, error) {
		return "hi there", nil
	}))
	defer srv.Close()

	w := widget.New(New(srv.URL))
	w.Initialize()
	buf := &buffer{value: "  hello  "}
	out, _, ok := w.Submit(buf)
	if !ok {
		t.Fatal("Submit() ok = false")
	}
	_, _ = w.Deliver(w.Fetch(context.Background(), out))

	msgs := w.Transcript().Messages()
	if len(msgs) != 3 || msgs[1].Text != "hello" || msgs[2].Text != "hi there" {
		t.Fatalf("transcript = %+v", msgs)
	}
}

type buffer struct{ value string }

func (b *buffer) Value() string { return b.value }
func (b *buffer) Reset()        { b.value = "" }
