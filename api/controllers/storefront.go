package controllers

import (
	"net/http"

	"github.com/angelmondragon/daypass-backend/api/responses"
	"github.com/angelmondragon/daypass-backend/api/validators"
	"github.com/angelmondragon/daypass-backend/internal/storefront"
	pkgerrors "github.com/angelmondragon/daypass-backend/pkg/errors"
	"github.com/angelmondragon/daypass-backend/pkg/logger"
)

// StorefrontCatalog returns the active batch and its twelve entries.
func StorefrontCatalog(svc storefront.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "storefront service unavailable"))
			return
		}

		view, err := svc.Catalog(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// StorefrontQuote prices a selection against the active batch.
func StorefrontQuote(svc storefront.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "storefront service unavailable"))
			return
		}

		var body storefront.QuoteRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := svc.Quote(r.Context(), body.Items)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}
