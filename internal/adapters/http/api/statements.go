// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	service "github.com/okian/rentals/internal/app"
	"github.com/okian/rentals/internal/domain/model"
	"github.com/okian/rentals/internal/domain/pricing"
	"github.com/okian/rentals/internal/domain/statement"
	"github.com/okian/rentals/internal/domain/types"
)

// maxBodyBytes bounds POST /statements bodies.
const maxBodyBytes = 1 << 20

// StatementRenderer defines the statement dependency.
type StatementRenderer interface {
	Statement(ctx context.Context, customer model.Customer) (service.Result, error)
}

// StatementsHandler handles statement requests.
type StatementsHandler struct {
	deps StatementRenderer
}

// NewStatementsHandler creates a new statements handler.
func NewStatementsHandler(deps StatementRenderer) *StatementsHandler {
	return &StatementsHandler{deps: deps}
}

// HandlePostStatement handles POST /statements requests. It answers with the
// plain-text statement, or JSON when the client accepts application/json.
func (h *StatementsHandler) HandlePostStatement(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_statement"

	var req statementRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	customer, err := req.customer()
	if err != nil {
		if errors.Is(err, pricing.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "invalid_input", err)
			return
		}
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	res, err := h.deps.Statement(r.Context(), customer)
	switch {
	case errors.Is(err, pricing.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid_input", err)
		return
	case errors.Is(err, statement.ErrMovieNotFound):
		writeError(w, http.StatusNotFound, "movie_not_found", err)
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "internal", err)
		return
	}

	w.Header().Set("X-Statement-Id", res.ID)
	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, newStatementResponse(res))
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(res.Text))
}

func newStatementResponse(res service.Result) statementResponse {
	lines := make([]types.StatementLine, 0, len(res.Statement.Lines))
	for _, l := range res.Statement.Lines {
		lines = append(lines, types.StatementLine{Title: l.Title, Amount: l.Amount.StringFixed(2)})
	}
	return statementResponse{
		StatementID: res.ID,
		Customer:    res.Statement.Customer,
		Lines:       lines,
		TotalAmount: res.Statement.Total.StringFixed(2),
		Points:      res.Statement.Points,
		Text:        res.Text,
	}
}
