package studio

import (
	"errors"
	"log/slog"

	"github.com/dmitrymomot/qrshare/handler"
	"github.com/dmitrymomot/qrshare/pkg/export"
	"github.com/dmitrymomot/qrshare/pkg/logger"
	"github.com/dmitrymomot/qrshare/pkg/qrcode"
)

// ParamsRequest is a partial edit: nil fields keep their current value.
type ParamsRequest struct {
	Payload       *string `json:"payload" form:"payload"`
	Size          *int    `json:"size" form:"size"`
	Foreground    *string `json:"foreground" form:"foreground"`
	Background    *string `json:"background" form:"background"`
	Level         *string `json:"level" form:"level"`
	IncludeMargin *bool   `json:"include_margin" form:"include_margin"`
}

// PreviewQuery asks for an embedded data URI preview.
type PreviewQuery struct {
	Preview bool `query:"preview"`
}

type FormatRequest struct {
	Format string `path:"format"`
}

// ParamsResponse describes the workspace's current element.
type ParamsResponse struct {
	Params  qrcode.Params `json:"params"`
	Version uint64        `json:"version"`
	Preview string        `json:"preview,omitempty"`
}

func (s *Service) getParams(ctx handler.Context, req PreviewQuery) handler.Response {
	el := s.workspaces.Get(SessionID(ctx)).Current()
	if el == nil {
		return handler.Error(ErrNothingRendered)
	}
	return s.paramsResponse(el, req.Preview)
}

func (s *Service) putParams(ctx handler.Context, req ParamsRequest) handler.Response {
	h := s.workspaces.Get(SessionID(ctx))

	base := s.workspaces.Defaults()
	if el := h.Current(); el != nil {
		base = el.Params()
	}

	p, verr := req.apply(base)
	if verr != nil {
		return handler.Error(verr)
	}

	el, err := h.Apply(p)
	if err != nil {
		return handler.Error(applyError(err))
	}

	s.logger.LogAttrs(ctx, slog.LevelDebug, "parameters applied",
		logger.Version(el.Version()),
		logger.Component("studio"),
	)
	return s.paramsResponse(el, true)
}

func (s *Service) preview(ctx handler.Context, req FormatRequest) handler.Response {
	format, err := export.ParseFormat(req.Format)
	if err != nil {
		return handler.Error(errors.Join(ErrUnknownFormat, err))
	}

	el := s.workspaces.Get(SessionID(ctx)).Current()
	if el == nil {
		return handler.Error(ErrNothingRendered)
	}

	var data []byte
	switch format {
	case export.FormatSVG:
		data, err = el.SVG()
	default:
		data, err = el.PNG()
	}
	if err != nil {
		return handler.Error(applyError(err))
	}
	return handler.Inline(data, export.Filename(format), format.ContentType())
}

func (s *Service) paramsResponse(el *qrcode.Element, withPreview bool) handler.Response {
	resp := ParamsResponse{Params: el.Params(), Version: el.Version()}
	if withPreview {
		uri, err := el.DataURI()
		if err != nil {
			return handler.Error(applyError(err))
		}
		resp.Preview = uri
	}
	return handler.JSON(resp)
}

// apply merges the request onto base. Color and level syntax errors are
// reported together with the range checks done by Params.Validate.
func (r ParamsRequest) apply(base qrcode.Params) (qrcode.Params, error) {
	p := base
	verr := handler.NewValidationError()

	if r.Payload != nil {
		p.Payload = *r.Payload
	}
	if r.Size != nil {
		p.Size = *r.Size
	}
	if r.IncludeMargin != nil {
		p.IncludeMargin = *r.IncludeMargin
	}
	if r.Foreground != nil {
		c, err := qrcode.ParseColor(*r.Foreground)
		if err != nil {
			verr.Add("foreground", err.Error())
		}
		p.Foreground = c
	}
	if r.Background != nil {
		c, err := qrcode.ParseColor(*r.Background)
		if err != nil {
			verr.Add("background", err.Error())
		}
		p.Background = c
	}
	if r.Level != nil {
		l, err := qrcode.ParseLevel(*r.Level)
		if err != nil {
			verr.Add("level", err.Error())
		} else {
			p.Level = l
		}
	}

	var perr qrcode.ParamsError
	if err := p.Validate(); errors.As(err, &perr) {
		for field, cause := range perr {
			if !verr.Has(field) {
				verr.Add(field, cause.Error())
			}
		}
	}

	if !verr.IsEmpty() {
		return base, verr
	}
	return p, nil
}

// applyError maps renderer errors to HTTP errors.
func applyError(err error) error {
	var perr qrcode.ParamsError
	switch {
	case errors.As(err, &perr):
		verr := handler.NewValidationError()
		for field, cause := range perr {
			verr.Add(field, cause.Error())
		}
		return verr
	case errors.Is(err, qrcode.ErrorFailedToGenerateQRCode):
		verr := handler.NewValidationError()
		verr.Add("payload", "payload does not fit a QR code at this error-correction level")
		return errors.Join(verr, err)
	case errors.Is(err, qrcode.ErrHandleClosed), errors.Is(err, qrcode.ErrDetached):
		return errors.Join(ErrWorkspaceClosed, err)
	default:
		return err
	}
}
