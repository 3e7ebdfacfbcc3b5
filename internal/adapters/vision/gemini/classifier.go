package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strings"

	"github.com/tozahudud/binbot/internal/domain"
	"github.com/tozahudud/binbot/internal/httpclient"
	"github.com/tozahudud/binbot/internal/ports"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	maxResponseBytes = 1 << 20
	defaultImageMIME = "image/jpeg"

	failedNote    = "AI tahlili amalga oshmadi"
	transportNote = "AI xizmatiga ulanishda xatolik yuz berdi"
)

const defaultPrompt = `Siz chiqindi konteynerlarini tahlil qiluvchi mutaxassissiz. Rasmni diqqat bilan ko'rib chiqing va quyidagilarga javob bering:

1. Rasmda chiqindi konteyneri (axlat qutisi, musor baki) bormi?
2. Agar konteyner bo'lsa, u to'lganmi?
3. Konteyner necha foiz to'lgan?
   - 0-25%: deyarli bo'sh
   - 26-50%: yarmigacha to'lgan
   - 51-75%: ko'p qismi to'lgan
   - 76-100%: to'la yoki toshib ketgan
4. Konteyner bo'lmasa, rasmda nima tasvirlangan?
5. Rasmda ko'ringan obyektlarni sanab bering (konteyner, paketlar, axlat, boshqa narsalar).
6. Konteyner to'la bo'lsa, xizmat ko'rsatish bo'yicha tavsiya bering.
7. Konteyner aniqlanmasa, buni izohda aniq yozing.

TO'LA BELGILARI:
- chiqindi konteyner chetidan oshib turibdi
- qopqoq yopilmaydi yoki ochiq qolgan
- konteyner atrofida paketlar va axlat yotibdi
- ichida bo'sh joy deyarli ko'rinmaydi

BO'SH BELGILARI:
- konteyner tubi yoki ichki devorlari ko'rinib turibdi
- ichida faqat bir nechta paket bor
- atrofi toza

KONTEYNERNI TANISH:
- shakli: to'rtburchak yoki silindr, g'ildirakli yoki g'ildiraksiz
- rangi: odatda yashil, ko'k, kulrang yoki qora
- yozuvlar, raqamlar yoki qayta ishlash belgilari
- qopqoq bor-yo'qligi
- joylashuvi: ko'cha chetida, hovlida, maxsus maydonchada

TAHLILDA E'TIBOR BERING:
- konteyner ichidagi chiqindi sathiga
- konteyner atrofidagi holatga
- yorug'lik va suratga olish burchagiga

Agar konteyner rasmda yaqin va aniq ko'rinsa, isWasteBin qiymatini true qiling.

Javobni faqat quyidagi kalitlarga ega JSON ko'rinishida qaytaring:
isWasteBin (boolean), isFull (boolean), fillLevel (0-100), confidence (0-100),
notes (o'zbek tilidagi qisqa izoh), detectedObjects (satrlar ro'yxati), suggestions (o'zbek tilidagi tavsiya).`

var tracer = otel.Tracer("github.com/tozahudud/binbot/internal/adapters/vision/gemini")

var ErrEmptyResponse = errors.New("gemini: empty response")

type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("gemini: status %d: %s", e.StatusCode, e.Body)
}

type Classifier struct {
	opts       options
	httpClient *http.Client
}

var _ ports.Classifier = (*Classifier)(nil)

func New(opts ...Option) *Classifier {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.httpClient == nil {
		o.httpClient = httpclient.New(httpclient.WithTimeout(o.timeout))
	}
	return &Classifier{opts: o, httpClient: o.httpClient}
}

// Classify always returns a verdict. Without an API key it returns the
// conservative "assume full" verdict; any failure yields a zero-confidence
// negative verdict whose notes describe the failure.
func (c *Classifier) Classify(ctx context.Context, image []byte) domain.Verdict {
	if strings.TrimSpace(c.opts.apiKey) == "" {
		c.logger().Info("classifier_credential_missing")
		return domain.NoCredentialVerdict()
	}

	verdict, err := c.analyze(ctx, image)
	if err != nil {
		c.logger().Warn("classifier_failed", "model", c.opts.model, "error", err)
		verdict := domain.FailedVerdict(failureNote(err))
		if isTransportFailure(err) {
			verdict.Suggestions = transportNote
		}
		return verdict
	}

	return verdict
}

func (c *Classifier) analyze(ctx context.Context, image []byte) (_ domain.Verdict, err error) {
	ctx, span := tracer.Start(ctx, "gemini.generateContent", trace.WithAttributes(
		attribute.String("ai.provider", "gemini"),
		attribute.String("ai.model", c.opts.model),
		attribute.Int("image.bytes", len(image)),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if len(image) == 0 {
		return domain.Verdict{}, errors.New("gemini: image is empty")
	}

	ctx, cancel := context.WithTimeout(ctx, c.opts.timeout)
	defer cancel()

	text, err := c.generate(ctx, c.buildRequest(image))
	if err != nil {
		return domain.Verdict{}, err
	}

	return decodeVerdict(text)
}

func (c *Classifier) buildRequest(image []byte) generateRequest {
	return generateRequest{
		Contents: []content{{
			Role: "user",
			Parts: []part{
				{Text: c.opts.prompt},
				{InlineData: &inlineData{
					MimeType: imageMIME(image),
					Data:     base64.StdEncoding.EncodeToString(image),
				}},
			},
		}},
		GenerationConfig: generationConfig{
			Temperature:      0.1,
			ResponseMimeType: "application/json",
			ResponseSchema:   verdictSchema(),
		},
	}
}

func (c *Classifier) generate(ctx context.Context, payload generateRequest) (string, error) {
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		return "", fmt.Errorf("encode gemini request: %w", err)
	}

	endpoint := strings.TrimRight(c.opts.baseURL, "/") + "/models/" + url.PathEscape(c.opts.model) + ":generateContent"
	endpoint += "?key=" + url.QueryEscape(c.opts.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, buf)
	if err != nil {
		return "", fmt.Errorf("create gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request gemini: %w: %w", domain.ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	var decoded generateResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode gemini response: %w", err)
	}

	text := decoded.joinText()
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}

	return text, nil
}

func decodeVerdict(text string) (domain.Verdict, error) {
	var payload verdictPayload
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &payload); err != nil {
		return domain.Verdict{}, fmt.Errorf("decode verdict: %w", err)
	}
	if payload.IsWasteBin == nil {
		return domain.Verdict{}, errors.New("decode verdict: isWasteBin missing")
	}

	return domain.Verdict{
		IsWasteContainer:  *payload.IsWasteBin,
		IsFull:            payload.IsFull,
		FillLevelPercent:  percent(payload.FillLevel),
		ConfidencePercent: percent(payload.Confidence),
		Notes:             strings.TrimSpace(payload.Notes),
		DetectedObjects:   payload.DetectedObjects,
		Suggestions:       strings.TrimSpace(payload.Suggestions),
	}.Normalized(), nil
}

// stripCodeFence removes a ```json ... ``` wrapper some models add despite the
// JSON response type.
func stripCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimPrefix(trimmed, "json")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

// percent clamps a model-reported value to 0..100 before converting, since
// out-of-range floats have no defined int conversion.
func percent(value float64) int {
	if math.IsNaN(value) {
		return 0
	}
	return int(math.Round(math.Max(0, math.Min(100, value))))
}

func failureNote(err error) string {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return fmt.Sprintf("%s: %d", transportNote, statusErr.StatusCode)
	}
	if isTransportFailure(err) {
		return transportNote
	}
	return failedNote
}

func isTransportFailure(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) ||
		errors.Is(err, domain.ErrTransport) ||
		errors.Is(err, context.DeadlineExceeded)
}

func imageMIME(image []byte) string {
	detected := http.DetectContentType(image)
	if strings.HasPrefix(detected, "image/") {
		return detected
	}
	return defaultImageMIME
}

func (c *Classifier) logger() *slog.Logger {
	if c.opts.logger != nil {
		return c.opts.logger
	}
	return slog.Default()
}
