package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func fakeServer(t *testing.T, reply string, seen *map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/models/test-model:generateContent"), r.URL.Path)
		if seen != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(seen))
		}
		w.Header().Set("Content-Type", "application/json")
		body, _ := json.Marshal(map[string]any{
			"candidates": []any{
				map[string]any{
					"content": map[string]any{
						"role":  "model",
						"parts": []any{map[string]any{"text": reply}},
					},
				},
			},
		})
		_, _ = w.Write(body)
	}))
}

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient(context.Background(), Config{})
	assert.Error(t, err)
}

func TestGenerateText(t *testing.T) {
	srv := fakeServer(t, "  balanced ration  ", nil)
	defer srv.Close()

	c, err := NewClient(context.Background(), Config{APIKey: "k", Model: "test-model", BaseURL: srv.URL + "/"})
	require.NoError(t, err)

	text, err := c.GenerateText(context.Background(), "analyse")
	require.NoError(t, err)
	assert.Equal(t, "balanced ration", text)
}

func TestGenerateJSONSetsMimeType(t *testing.T) {
	var seen map[string]any
	srv := fakeServer(t, `{"items":[]}`, &seen)
	defer srv.Close()

	c, err := NewClient(context.Background(), Config{APIKey: "k", Model: "test-model", BaseURL: srv.URL + "/"})
	require.NoError(t, err)

	text, err := c.GenerateJSON(context.Background(), "optimize", &genai.Schema{Type: genai.TypeObject})
	require.NoError(t, err)
	assert.Equal(t, `{"items":[]}`, text)

	gen, ok := seen["generationConfig"].(map[string]any)
	require.True(t, ok, "generationConfig sent")
	assert.Equal(t, "application/json", gen["responseMimeType"])
}

func TestGenerateEmptyReply(t *testing.T) {
	srv := fakeServer(t, "   ", nil)
	defer srv.Close()

	c, err := NewClient(context.Background(), Config{APIKey: "k", Model: "test-model", BaseURL: srv.URL + "/"})
	require.NoError(t, err)

	_, err = c.GenerateText(context.Background(), "analyse")
	assert.Error(t, err)
}
