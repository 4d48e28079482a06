package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"lifelog/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func geminiResponse(text string) string {
	payload := map[string]interface{}{
		"candidates": []map[string]interface{}{
			{"content": map[string]interface{}{
				"parts": []map[string]string{{"text": text}},
			}},
		},
	}
	data, _ := json.Marshal(payload)
	return string(data)
}

func newTestVisionClient(serverURL string) *VisionClient {
	return NewVisionClient(&config.AIConfig{
		BaseURL: serverURL,
		APIKey:  "test-key",
		Model:   "gemini-2.5-flash",
	})
}

func TestAnalyzeMealText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/gemini-2.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Contains(t, body, "contents")

		fmt.Fprint(w, geminiResponse(`{"name":"鸡胸沙拉","estimated_calories":420,"protein_g":38,"carbs_g":20,"fat_g":18}`))
	}))
	defer server.Close()

	estimate, err := newTestVisionClient(server.URL).AnalyzeMealText(context.Background(), "一份鸡胸沙拉")
	require.NoError(t, err)
	assert.Equal(t, "鸡胸沙拉", estimate.Name)
	assert.Equal(t, 420, estimate.EstimatedCalories)
	assert.Equal(t, 38.0, estimate.ProteinG)
}

func TestAnalyzeMealPhoto_SendsInlineData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Contents []struct {
				Parts []map[string]interface{} `json:"parts"`
			} `json:"contents"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Contents, 1)
		require.Len(t, body.Contents[0].Parts, 2)
		// 第二个 part 是 base64 的图片
		inline := body.Contents[0].Parts[1]["inline_data"].(map[string]interface{})
		assert.Equal(t, "image/jpeg", inline["mime_type"])
		assert.NotEmpty(t, inline["data"])

		fmt.Fprint(w, geminiResponse(`{"name":"拉面","estimated_calories":650,"protein_g":25,"carbs_g":80,"fat_g":22}`))
	}))
	defer server.Close()

	estimate, err := newTestVisionClient(server.URL).AnalyzeMealPhoto(context.Background(), []byte("fake-jpeg"), "image/jpeg", "加了蛋")
	require.NoError(t, err)
	assert.Equal(t, "拉面", estimate.Name)
}

func TestAnalyzeMealText_CodeFencedJSON(t *testing.T) {
	// 模型偶尔无视 response_mime_type，把 JSON 包在围栏里
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, geminiResponse("```json\n{\"name\":\"咖喱饭\",\"estimated_calories\":550,\"protein_g\":18,\"carbs_g\":85,\"fat_g\":15}\n```"))
	}))
	defer server.Close()

	estimate, err := newTestVisionClient(server.URL).AnalyzeMealText(context.Background(), "咖喱饭")
	require.NoError(t, err)
	assert.Equal(t, "咖喱饭", estimate.Name)
	assert.Equal(t, 550, estimate.EstimatedCalories)
}

func TestAnalyzeMealText_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := newTestVisionClient(server.URL).AnalyzeMealText(context.Background(), "x")
	assert.ErrorIs(t, err, ErrAnalysisFailed)
}

func TestAnalyzeMealText_MalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, geminiResponse("抱歉，我无法分析这张图片。"))
	}))
	defer server.Close()

	_, err := newTestVisionClient(server.URL).AnalyzeMealText(context.Background(), "x")
	assert.ErrorIs(t, err, ErrAnalysisFailed)
}

func TestAnalyzeMealText_EmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"candidates":[]}`)
	}))
	defer server.Close()

	_, err := newTestVisionClient(server.URL).AnalyzeMealText(context.Background(), "x")
	assert.ErrorIs(t, err, ErrAnalysisFailed)
}

func TestStripCodeFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, StripCodeFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripCodeFences("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripCodeFences(`{"a":1}`))
}
