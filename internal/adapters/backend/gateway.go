package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/tozahudud/binbot/internal/domain"
	"github.com/tozahudud/binbot/internal/ports"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	binsPath         = "/waste-bins/"
	sensorUpdatePath = "/iot-devices/data/update/"
)

// Gateway exposes the backend operations used by the bots. Every call runs
// under one request timeout, authenticates through Session and retries once
// after a re-login when the backend rejects the token.
type Gateway struct {
	Session        *Session
	HTTPClient     *http.Client
	RequestTimeout time.Duration
	Clock          ports.Clock
	Logger         *slog.Logger
}

var (
	_ ports.BinGateway    = (*Gateway)(nil)
	_ ports.SensorGateway = (*Gateway)(nil)
)

type requestBuilder func(ctx context.Context) (*http.Request, error)

func (g *Gateway) GetBinSnapshot(ctx context.Context, id domain.BinID) (_ domain.BinSnapshot, _ bool, err error) {
	ctx, span := tracer.Start(ctx, "backend.GetBinSnapshot", trace.WithAttributes(attribute.String("bin.id", id.String())))
	defer func() { endSpan(span, err) }()

	ctx, cancel := requestContext(ctx, g.RequestTimeout)
	defer cancel()

	return g.getBinSnapshot(ctx, id)
}

func (g *Gateway) getBinSnapshot(ctx context.Context, id domain.BinID) (domain.BinSnapshot, bool, error) {
	endpoint, err := g.binURL(id, "")
	if err != nil {
		return domain.BinSnapshot{}, false, err
	}

	resp, err := g.do(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("create bin request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		return req, nil
	})
	if err != nil {
		return domain.BinSnapshot{}, false, fmt.Errorf("get bin %s: %w", id, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return domain.BinSnapshot{}, false, nil
	}
	if !isSuccess(resp.StatusCode) {
		return domain.BinSnapshot{}, false, statusError(fmt.Sprintf("get bin %s", id), resp)
	}

	var payload binPayload
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&payload); err != nil {
		return domain.BinSnapshot{}, false, fmt.Errorf("decode bin response: %w: %w", domain.ErrTransport, err)
	}

	snapshot := payload.toDomain()
	if snapshot.ID.IsZero() {
		snapshot.ID = id
	}

	return snapshot, true, nil
}

func (g *Gateway) UpdateBinWithImage(ctx context.Context, id domain.BinID, image []byte, verdict domain.Verdict) (_ domain.AnalyzedBin, err error) {
	ctx, span := tracer.Start(ctx, "backend.UpdateBinWithImage", trace.WithAttributes(
		attribute.String("bin.id", id.String()),
		attribute.Int("image.bytes", len(image)),
		attribute.Bool("verdict.is_full", verdict.IsFull),
	))
	defer func() { endSpan(span, err) }()

	if len(image) == 0 {
		return domain.AnalyzedBin{}, errors.New("image is empty")
	}

	ctx, cancel := requestContext(ctx, g.RequestTimeout)
	defer cancel()

	endpoint, err := g.binURL(id, "update-image-file/")
	if err != nil {
		return domain.AnalyzedBin{}, err
	}

	resp, err := g.do(ctx, func(ctx context.Context) (*http.Request, error) {
		body, contentType, err := encodeImageUpdate(image, verdict)
		if err != nil {
			return nil, err
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPatch, endpoint, body)
		if err != nil {
			return nil, fmt.Errorf("create image update request: %w", err)
		}
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Accept", "application/json")
		return req, nil
	})
	if err != nil {
		return domain.AnalyzedBin{}, fmt.Errorf("update bin %s image: %w", id, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		drainAndClose(resp)
		return domain.AnalyzedBin{}, fmt.Errorf("update bin %s image: %w", id, domain.ErrBinNotFound)
	case !isSuccess(resp.StatusCode):
		defer func() { _ = resp.Body.Close() }()
		return domain.AnalyzedBin{}, statusError(fmt.Sprintf("update bin %s image", id), resp)
	}
	drainAndClose(resp)

	g.logger().Info("bin_image_updated", "bin_id", id.String(), "is_full", verdict.IsFull, "fill_level", verdict.FillLevelPercent)

	snapshot, found, err := g.getBinSnapshot(ctx, id)
	if err != nil {
		return domain.AnalyzedBin{}, fmt.Errorf("refresh bin after update: %w", err)
	}
	if !found {
		return domain.AnalyzedBin{}, fmt.Errorf("refresh bin %s after update: %w", id, domain.ErrBinNotFound)
	}

	return domain.AnalyzedBin{Snapshot: snapshot, Verdict: verdict}, nil
}

func (g *Gateway) PostSensorReading(ctx context.Context, reading domain.SensorReading) (err error) {
	ctx, span := tracer.Start(ctx, "backend.PostSensorReading", trace.WithAttributes(attribute.String("device.id", reading.DeviceID)))
	defer func() { endSpan(span, err) }()

	if !reading.Valid() {
		return errors.New("sensor reading requires a device id and a temperature or humidity value")
	}

	ctx, cancel := requestContext(ctx, g.RequestTimeout)
	defer cancel()

	endpoint, err := g.endpoint(sensorUpdatePath)
	if err != nil {
		return err
	}

	body, err := json.Marshal(toSensorPayload(reading, g.now().Unix()))
	if err != nil {
		return fmt.Errorf("encode sensor reading: %w", err)
	}

	resp, err := g.do(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("create sensor request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		return req, nil
	})
	if err != nil {
		g.logger().Error("sensor_post_failed", "device_id", reading.DeviceID, "error", err)
		return fmt.Errorf("post sensor reading for %s: %w", reading.DeviceID, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		g.logger().Warn("sensor_device_unknown", "device_id", reading.DeviceID)
		return fmt.Errorf("post sensor reading for %s: %w", reading.DeviceID, domain.ErrDeviceNotFound)
	}
	if !isSuccess(resp.StatusCode) {
		err := statusError(fmt.Sprintf("post sensor reading for %s", reading.DeviceID), resp)
		g.logger().Error("sensor_post_failed", "device_id", reading.DeviceID, "error", err)
		return err
	}

	g.logger().Info("sensor_reading_posted", "device_id", reading.DeviceID)
	return nil
}

// do sends the request built by build. On an authorization failure it logs in
// again and sends a freshly built request exactly once more.
func (g *Gateway) do(ctx context.Context, build requestBuilder) (*http.Response, error) {
	if g.Session == nil {
		return nil, errors.New("backend session is not configured")
	}
	if err := g.Session.EnsureAuthenticated(ctx); err != nil {
		return nil, err
	}

	resp, token, err := g.send(ctx, build)
	if err != nil {
		return nil, err
	}
	if !isAuthFailure(resp.StatusCode) {
		return resp, nil
	}
	drainAndClose(resp)

	g.logger().Info("backend_authorization_rejected", "status", resp.StatusCode)
	if err := g.Session.Relogin(ctx, token); err != nil {
		return nil, err
	}

	resp, _, err = g.send(ctx, build)
	if err != nil {
		return nil, err
	}
	if isAuthFailure(resp.StatusCode) {
		drainAndClose(resp)
		return nil, fmt.Errorf("authorization rejected after re-login (status %d): %w", resp.StatusCode, domain.ErrAuthentication)
	}

	return resp, nil
}

func (g *Gateway) send(ctx context.Context, build requestBuilder) (*http.Response, string, error) {
	req, err := build(ctx)
	if err != nil {
		return nil, "", err
	}
	token := g.Session.authorize(req)

	resp, err := g.httpClient().Do(req)
	if err != nil {
		return nil, token, fmt.Errorf("%w: %w", domain.ErrTransport, err)
	}

	return resp, token, nil
}

func (g *Gateway) binURL(id domain.BinID, suffix string) (string, error) {
	if id.IsZero() {
		return "", errors.New("bin id is required")
	}
	return g.endpoint(binsPath + url.PathEscape(id.String()) + "/" + suffix)
}

func (g *Gateway) endpoint(path string) (string, error) {
	if g.Session == nil {
		return "", errors.New("backend session is not configured")
	}
	return buildAPIURL(g.Session.API.BaseURL, path)
}

func (g *Gateway) httpClient() *http.Client {
	if g.HTTPClient != nil {
		return g.HTTPClient
	}
	return clientOrDefault(g.Session.HTTPClient)
}

func (g *Gateway) now() time.Time {
	if g.Clock != nil {
		return g.Clock.Now()
	}
	return time.Now()
}

func (g *Gateway) logger() *slog.Logger {
	if g.Logger != nil {
		return g.Logger
	}
	return slog.Default()
}
