// Package handler adapts typed request handlers to net/http.
//
// A handler receives its request already bound and returns a Response:
//
//	type FormatRequest struct {
//		Format string `path:"format"`
//	}
//
//	func (s *Service) export(ctx handler.Context, req FormatRequest) handler.Response {
//		dl, err := s.download(ctx, req.Format)
//		if err != nil {
//			return handler.Error(err)
//		}
//		return handler.Attachment(dl.Data, dl.Filename, dl.ContentType)
//	}
//
//	r.Get("/export/{format}", handler.Wrap(s.export,
//		handler.WithBinder[handler.Context, FormatRequest](binder.Path(chi.URLParam)),
//		handler.WithErrorHandler[handler.Context, FormatRequest](errorHandler),
//	))
//
// Responses: JSON and JSONError for the API envelope, Attachment and Inline
// for generated files, Empty for 204, Templ for HTML fragments and SSE for
// DataStar event streams. Error hands an error to the ErrorHandler.
//
// HTTPError and ValidationError control the status code. JSONErrorHandler
// renders them as JSON, or as a toast patch for DataStar requests.
package handler
