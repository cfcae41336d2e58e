// Package telemetry настраивает распределённую трассировку решателя:
// провайдер OTLP и помощники для span'ов вокруг операций решения.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"

	"mcflow/pkg/config"
)

// Config - параметры трассировки
type Config struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
	Version     string
	Environment string
	SampleRate  float64
}

// FromConfig собирает параметры трассировки из секций конфигурации
// сервиса. Пустое имя сервиса наследуется от имени приложения.
func FromConfig(tr *config.TracingConfig, app *config.AppConfig) Config {
	name := tr.ServiceName
	if name == "" {
		name = app.Name
	}
	return Config{
		Enabled:     tr.Enabled,
		Endpoint:    tr.Endpoint,
		ServiceName: name,
		Version:     app.Version,
		Environment: app.Environment,
		SampleRate:  tr.SampleRate,
	}
}

// Provider - обёртка над TracerProvider. При выключенной трассировке
// tp остаётся nil, а tracer ничего не записывает.
type Provider struct {
	tp     *sdktrace.TracerProvider
	tracer trace.Tracer
}

var global *Provider

// Init инициализирует трассировку. Выключенная конфигурация даёт рабочий
// noop-провайдер: вызывающий код не различает эти случаи.
func Init(ctx context.Context, cfg Config) (*Provider, error) {
	name := cfg.ServiceName
	if name == "" {
		name = "mcflow"
	}

	if !cfg.Enabled {
		p := &Provider{tracer: otel.Tracer(name)}
		global = p
		return p, nil
	}

	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(cfg.Endpoint),
		otlptracegrpc.WithInsecure(), // TLS к коллектору пока не нужен
	)
	if err != nil {
		return nil, fmt.Errorf("otlp exporter %s: %w", cfg.Endpoint, err)
	}

	// Метаданные сервиса для каждого span'а
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(name),
			semconv.ServiceVersion(cfg.Version),
			semconv.DeploymentEnvironment(cfg.Environment),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("telemetry resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(samplerFor(cfg.SampleRate)),
	)

	// Глобальная регистрация, чтобы helpers пакета видели провайдер
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	p := &Provider{
		tp:     tp,
		tracer: tp.Tracer(name),
	}
	global = p
	return p, nil
}

// samplerFor переводит долю сэмплирования в sampler: 0 - ничего,
// 1 и больше - всё, промежуточные значения - по TraceID.
func samplerFor(rate float64) sdktrace.Sampler {
	switch {
	case rate <= 0:
		return sdktrace.NeverSample()
	case rate >= 1:
		return sdktrace.AlwaysSample()
	default:
		return sdktrace.TraceIDRatioBased(rate)
	}
}

// Shutdown сбрасывает накопленные span'ы и останавливает провайдер.
// Для noop-провайдера ничего не делает.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.tp == nil {
		return nil
	}
	return p.tp.Shutdown(ctx)
}

// Tracer возвращает tracer провайдера
func (p *Provider) Tracer() trace.Tracer {
	return p.tracer
}

// Get возвращает глобальный провайдер; до Init - noop
func Get() *Provider {
	if global == nil {
		return &Provider{tracer: otel.Tracer("mcflow")}
	}
	return global
}

// =============================================================================
// Помощники для span'ов
//
// Сервисный слой оборачивает каждую операцию решения: StartSpan в начале,
// SetAttributes для задачи и результата, AddEvent для попаданий в кэш,
// SetError для ошибок валидации.
// =============================================================================

// StartSpan начинает span на глобальном провайдере
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return Get().tracer.Start(ctx, name, opts...)
}

// SpanFromContext возвращает текущий span контекста
func SpanFromContext(ctx context.Context) trace.Span {
	return trace.SpanFromContext(ctx)
}

// SetAttributes добавляет атрибуты к текущему span'у
func SetAttributes(ctx context.Context, attrs ...attribute.KeyValue) {
	trace.SpanFromContext(ctx).SetAttributes(attrs...)
}

// AddEvent отмечает событие в текущем span'е
func AddEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	trace.SpanFromContext(ctx).AddEvent(name, trace.WithAttributes(attrs...))
}

// SetError записывает ошибку и помечает span как ошибочный
func SetError(ctx context.Context, err error) {
	span := trace.SpanFromContext(ctx)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// WithAttributes - SpanStartOption с атрибутами для StartSpan
func WithAttributes(attrs ...attribute.KeyValue) trace.SpanStartOption {
	return trace.WithAttributes(attrs...)
}
