package response

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Additional-Code/fooddelivery/pkg/errorbank"
)

// Builder helps construct consistent HTTP responses.
type Builder struct {
	ctx     echo.Context
	status  int
	data    any
	message string
	err     error
}

// New instantiates a Builder for the provided request context.
func New(ctx echo.Context) *Builder {
	return &Builder{ctx: ctx, status: http.StatusOK}
}

// WithStatus overrides the response status code.
func (b *Builder) WithStatus(status int) *Builder {
	if status > 0 {
		b.status = status
	}
	return b
}

// WithData attaches a success payload. The payload is written as the body
// without an envelope.
func (b *Builder) WithData(data any) *Builder {
	b.data = data
	return b
}

// WithMessage sets an acknowledgement used when no payload is attached.
func (b *Builder) WithMessage(message string) *Builder {
	b.message = message
	return b
}

// WithError records an error to be rendered.
func (b *Builder) WithError(err error) *Builder {
	b.err = err
	return b
}

// Build finalises and emits the HTTP response.
func (b *Builder) Build() error {
	if b.err != nil {
		return b.buildError()
	}
	return b.buildSuccess()
}

func (b *Builder) buildSuccess() error {
	if b.status == 0 {
		b.status = http.StatusOK
	}
	if b.data != nil {
		return b.ctx.JSON(b.status, b.data)
	}
	return b.ctx.JSON(b.status, map[string]string{"message": b.message})
}

func (b *Builder) buildError() error {
	appErr := errorbank.From(b.err)
	status := b.status
	if status < 400 {
		status = appErr.StatusCode()
	}
	payload := struct {
		Error   string         `json:"error"`
		Kind    string         `json:"kind"`
		Details map[string]any `json:"details,omitempty"`
	}{
		Error:   appErr.Message(),
		Kind:    string(appErr.Kind()),
		Details: appErr.Details(),
	}

	return b.ctx.JSON(status, payload)
}
