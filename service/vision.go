package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"lifelog/config"
)

// ErrAnalysisFailed 推理调用失败或返回内容无法解析。
// 调用方据此向用户展示失败，不落任何半成品记录。
var ErrAnalysisFailed = errors.New("meal analysis failed")

// MealEstimate 视觉/语言模型返回的营养估算（校准前）
type MealEstimate struct {
	Name              string  `json:"name"`
	EstimatedCalories int     `json:"estimated_calories"`
	ProteinG          float64 `json:"protein_g"`
	CarbsG            float64 `json:"carbs_g"`
	FatG              float64 `json:"fat_g"`
}

// VisionClient Gemini generateContent 客户端
type VisionClient struct {
	cfg    *config.AIConfig
	client *http.Client
}

// NewVisionClient 创建推理客户端
func NewVisionClient(cfg *config.AIConfig) *VisionClient {
	return &VisionClient{
		cfg:    cfg,
		client: &http.Client{Timeout: 120 * time.Second},
	}
}

const mealPrompt = `任务：分析这份食物并估算营养成分。
用户备注：%s

要求：
1. 蛋白质来源按生重估算。
2. 只输出以下 JSON，不要输出任何其他内容：
{
    "name": "食物名称",
    "estimated_calories": 0,
    "protein_g": 0,
    "carbs_g": 0,
    "fat_g": 0
}`

// AnalyzeMealPhoto 对照片做营养估算
func (v *VisionClient) AnalyzeMealPhoto(ctx context.Context, image []byte, mimeType, note string) (MealEstimate, error) {
	parts := []map[string]interface{}{
		{"text": fmt.Sprintf(mealPrompt, note)},
		{"inline_data": map[string]string{
			"mime_type": mimeType,
			"data":      base64.StdEncoding.EncodeToString(image),
		}},
	}
	return v.generate(ctx, parts)
}

// AnalyzeMealText 对文字描述做营养估算
func (v *VisionClient) AnalyzeMealText(ctx context.Context, description string) (MealEstimate, error) {
	parts := []map[string]interface{}{
		{"text": fmt.Sprintf(mealPrompt, description)},
	}
	return v.generate(ctx, parts)
}

// generate 调用 generateContent 并解析 JSON 结果
func (v *VisionClient) generate(ctx context.Context, parts []map[string]interface{}) (MealEstimate, error) {
	requestBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{"parts": parts},
		},
		"generationConfig": map[string]string{
			"response_mime_type": "application/json",
		},
	}
	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return MealEstimate{}, fmt.Errorf("%w: 构建请求失败: %v", ErrAnalysisFailed, err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		strings.TrimRight(v.cfg.BaseURL, "/"), v.cfg.Model, v.cfg.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return MealEstimate{}, fmt.Errorf("%w: 创建请求失败: %v", ErrAnalysisFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		return MealEstimate{}, fmt.Errorf("%w: 请求推理服务失败: %v", ErrAnalysisFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return MealEstimate{}, fmt.Errorf("%w: 推理服务返回 %d: %s", ErrAnalysisFailed, resp.StatusCode, string(body))
	}

	var payload struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return MealEstimate{}, fmt.Errorf("%w: 响应格式错误: %v", ErrAnalysisFailed, err)
	}
	if len(payload.Candidates) == 0 || len(payload.Candidates[0].Content.Parts) == 0 {
		return MealEstimate{}, fmt.Errorf("%w: 响应为空", ErrAnalysisFailed)
	}

	text := StripCodeFences(payload.Candidates[0].Content.Parts[0].Text)
	var estimate MealEstimate
	if err := json.Unmarshal([]byte(text), &estimate); err != nil {
		return MealEstimate{}, fmt.Errorf("%w: JSON 解析失败: %v", ErrAnalysisFailed, err)
	}
	return estimate, nil
}

// StripCodeFences 剥离模型偶尔包在 JSON 外面的代码围栏标记
func StripCodeFences(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}
