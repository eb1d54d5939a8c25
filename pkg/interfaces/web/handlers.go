package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/vsinha/storecalc/pkg/application/dto"
	"github.com/vsinha/storecalc/pkg/domain/entities"
	"github.com/vsinha/storecalc/pkg/domain/repositories"
	"github.com/vsinha/storecalc/pkg/interfaces/cli/output"
)

const maxBodyBytes = 1 << 20

// readQuery overlays the query parameters on the default form. Absent
// parameters keep their defaults; present but blank ones normalize to 0.
func (s *Server) readQuery(r *http.Request) (entities.InputForm, entities.CurrencyCode) {
	form := s.calculator.Defaults()
	query := r.URL.Query()
	for _, field := range entities.FormFields() {
		if values, ok := query[field.Key]; ok && len(values) > 0 {
			form.Set(field.Key, values[0])
		}
	}
	return form, entities.CurrencyCode(query.Get("currency"))
}

// calculate runs the calculator and writes the error response on failure
func (s *Server) calculate(
	w http.ResponseWriter,
	r *http.Request,
	form entities.InputForm,
	code entities.CurrencyCode,
) (*dto.CalculationResult, bool) {
	result, err := s.calculator.Calculate(r.Context(), form, code)
	if err != nil {
		s.writeCalculatorError(w, r, err)
		return nil, false
	}
	return result, true
}

func (s *Server) writeCalculatorError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, repositories.ErrCurrencyNotFound) {
		writeError(w, r, http.StatusBadRequest, "unknown_currency", err.Error())
		return
	}
	s.logger.Error("calculation failed", zap.Error(err))
	writeError(w, r, http.StatusInternalServerError, "internal", "calculation failed")
}

func (s *Server) formatter(result *dto.CalculationResult) *output.Formatter {
	return output.NewFormatter(s.locale, result.Currency)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	form, code := s.readQuery(r)
	result, ok := s.calculate(w, r, form, code)
	if !ok {
		return
	}

	currencies, err := s.calculator.Currencies()
	if err != nil {
		s.writeCalculatorError(w, r, err)
		return
	}

	data := newPageData(result, currencies, output.NewResultView(result, s.formatter(result)))
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.page.ExecuteTemplate(w, "page.html", data); err != nil {
		s.logger.Error("failed to render page", zap.Error(err))
	}
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	result, err := s.calculator.Reset(r.Context())
	if err != nil {
		s.writeCalculatorError(w, r, err)
		return
	}
	http.Redirect(w, r, "/?"+formQuery(result.Form, result.Currency.Code).Encode(), http.StatusSeeOther)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCalculateQuery(w http.ResponseWriter, r *http.Request) {
	form, code := s.readQuery(r)
	if result, ok := s.calculate(w, r, form, code); ok {
		writeJSON(w, http.StatusOK, result)
	}
}

// readBody overlays a JSON object on the default form. Fields are keyed by
// their json or yaml names and may be numbers or strings; null reads as blank
// and any other literal goes through the usual number parsing.
func (s *Server) readBody(w http.ResponseWriter, r *http.Request) (entities.InputForm, entities.CurrencyCode, error) {
	var body map[string]json.RawMessage
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
		return entities.InputForm{}, "", err
	}

	form := s.calculator.Defaults()
	for _, field := range entities.FormFields() {
		raw, ok := body[field.JSONKey]
		if !ok {
			raw, ok = body[field.Key]
		}
		if ok {
			form.Set(field.Key, rawText(raw))
		}
	}
	return form, entities.CurrencyCode(rawText(body["currency"])), nil
}

// rawText unquotes JSON strings and passes every other literal through as is
func rawText(raw json.RawMessage) string {
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}
	return string(bytes.TrimSpace(raw))
}

func (s *Server) handleCalculateJSON(w http.ResponseWriter, r *http.Request) {
	form, code, err := s.readBody(w, r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_body", fmt.Sprintf("invalid request body: %v", err))
		return
	}

	if result, ok := s.calculate(w, r, form, code); ok {
		writeJSON(w, http.StatusOK, result)
	}
}

func (s *Server) handleCurrencies(w http.ResponseWriter, r *http.Request) {
	currencies, err := s.calculator.Currencies()
	if err != nil {
		s.writeCalculatorError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, currencies)
}

func (s *Server) handleDefaults(w http.ResponseWriter, r *http.Request) {
	currencies, err := s.calculator.Currencies()
	if err == nil && len(currencies) == 0 {
		err = errors.New("no currencies configured")
	}
	if err != nil {
		s.writeCalculatorError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"form":     s.calculator.Defaults(),
		"currency": currencies[0].Code,
	})
}

func (s *Server) handleFinancialChart(w http.ResponseWriter, r *http.Request) {
	form, code := s.readQuery(r)
	if result, ok := s.calculate(w, r, form, code); ok {
		writeSVG(w, output.NewBarChart().GenerateSVG(result.FinancialChart, s.formatter(result)))
	}
}

func (s *Server) handleDistributionChart(w http.ResponseWriter, r *http.Request) {
	form, code := s.readQuery(r)
	if result, ok := s.calculate(w, r, form, code); ok {
		writeSVG(w, output.NewDoughnutChart().GenerateSVG(result.CostDistribution, s.formatter(result)))
	}
}

// formQuery encodes a form and currency as page query parameters
func formQuery(form entities.InputForm, code entities.CurrencyCode) url.Values {
	values := url.Values{}
	for _, field := range entities.FormFields() {
		values.Set(field.Key, form.Get(field.Key))
	}
	values.Set("currency", string(code))
	return values
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSVG(w http.ResponseWriter, svg string) {
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write([]byte(svg))
}

// writeError writes the JSON error envelope
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	writeJSON(w, status, map[string]string{
		"error":      code,
		"message":    message,
		"request_id": chimw.GetReqID(r.Context()),
	})
}
