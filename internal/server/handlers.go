package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/franckalain/nutriscan/internal/estimate"
	"github.com/franckalain/nutriscan/internal/logger"
	"github.com/franckalain/nutriscan/internal/models"
	"github.com/franckalain/nutriscan/internal/nutrition"
)

// estimateRequest is the JSON body of the estimate and extract endpoints.
type estimateRequest struct {
	PhotoDataURI string `json:"photoDataUri"`
	DishName     string `json:"dishName"`
}

type rescaleRequest struct {
	Record models.NutritionRecord `json:"record"`
	Grams  float64                `json:"grams"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Errorf("Error writing response: %v", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	logger.Log.Errorf("[%s] %s %s failed with %d: %v", requestID(r.Context()), r.Method, r.URL.Path, status, err)
	writeJSON(w, status, errorResponse{Error: publicMessage(err)})
}

func writeBadRequest(w http.ResponseWriter, r *http.Request, message string) {
	logger.Log.Errorf("[%s] %s %s bad request: %s", requestID(r.Context()), r.Method, r.URL.Path, message)
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: message})
}

var errInvalidJSON = errors.New("Invalid JSON in request body.")

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxUploadBytes*2))
	if err := dec.Decode(v); err != nil {
		return errInvalidJSON
	}
	return nil
}

// run executes one estimation under the request timeout and writes the result.
func (s *Server) run(w http.ResponseWriter, r *http.Request, kind estimate.Kind, input string) {
	ctx, cancel := s.requestContext(r.Context())
	defer cancel()

	rec, err := s.service.Estimate(ctx, kind, input)
	if err != nil {
		if ctx.Err() != nil {
			err = errors.Join(err, ctx.Err())
		}
		writeError(w, r, err)
		return
	}

	logger.Log.Infof("[%s] %s estimate: %s (portion %q) energy %.1f kcal, protein %.1fg, fats %.1fg, water %.1fg",
		requestID(r.Context()), kind, rec.Name, rec.Portion, rec.Energy, rec.Protein, rec.Fats, rec.Water)
	writeJSON(w, http.StatusOK, rec)
}

// handleEstimate accepts either a dish photo or a dish name.
func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	var req estimateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, r, err.Error())
		return
	}

	switch {
	case req.PhotoDataURI != "":
		s.run(w, r, estimate.KindDish, req.PhotoDataURI)
	case strings.TrimSpace(req.DishName) != "":
		s.run(w, r, estimate.KindText, req.DishName)
	default:
		writeBadRequest(w, r, "Missing photoDataUri or dishName in request body")
	}
}

func (s *Server) handleEstimateText(w http.ResponseWriter, r *http.Request) {
	var req estimateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, r, err.Error())
		return
	}
	if strings.TrimSpace(req.DishName) == "" {
		writeBadRequest(w, r, "Missing dishName in request body")
		return
	}
	s.run(w, r, estimate.KindText, req.DishName)
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req estimateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, r, err.Error())
		return
	}
	if req.PhotoDataURI == "" {
		writeBadRequest(w, r, "Missing photoDataUri in request body")
		return
	}
	s.run(w, r, estimate.KindLabel, req.PhotoDataURI)
}

// handleUpload serves the multipart variants, which carry the image in a
// "photo" form file instead of a data URI.
func (s *Server) handleUpload(kind estimate.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			writeBadRequest(w, r, "Invalid multipart form data")
			return
		}

		file, header, err := r.FormFile("photo")
		if err != nil {
			writeBadRequest(w, r, "Missing photo in form data")
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			writeBadRequest(w, r, "Could not read uploaded photo")
			return
		}

		mimeType := header.Header.Get("Content-Type")
		if !strings.HasPrefix(mimeType, "image/") {
			mimeType = http.DetectContentType(data)
		}
		s.run(w, r, kind, estimate.EncodeDataURI(mimeType, data))
	}
}

func (s *Server) handleRescale(w http.ResponseWriter, r *http.Request) {
	var req rescaleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, r, err.Error())
		return
	}

	consumed, err := nutrition.Rescale(req.Record, req.Grams)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, consumed)
}

var _ Pipeline = (*estimate.Service)(nil)
