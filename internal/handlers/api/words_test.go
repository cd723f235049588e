package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"

	"wordcharts/internal/extractor"
	"wordcharts/internal/fetcher"
	"wordcharts/internal/metrics"
	"wordcharts/internal/pipeline"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"network", fmt.Errorf("%w: HTTP 404 Not Found", fetcher.ErrNetwork), 502},
		{"unsupported", fmt.Errorf("%w: content-type \"image/png\"", fetcher.ErrUnsupportedContent), 422},
		{"no chinese", extractor.ErrNoChineseText, 422},
		{"other", errors.New("parse failure"), 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statusFor(tt.err); got != tt.want {
				t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestJSONAnalysisError(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c fiber.Ctx) error {
		return jsonAnalysisError(c, extractor.ErrNoChineseText)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", resp.StatusCode)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "error" || body["error"] != pipeline.MsgNoChinese || body["code"] != metrics.OutcomeNoChinese {
		t.Errorf("body = %v", body)
	}
}
