// Package server exposes hide, dig and capacity over HTTP.
package server

import (
	"bytes"
	"encoding/json"
	"image"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	steg "github.com/zedseven/textsteg"
)

const (
	maxUploadBytes = 32 << 20
	// A decoded pixel takes four bytes, so this caps one buffer at 256 MiB.
	defaultMaxPixels = 1 << 26
)

// Server handles stego requests. Every request works on its own buffers, so a
// Server needs no locking.
type Server struct {
	format    steg.Format
	encoding  steg.Encoding
	logger    *log.Logger
	maxPixels int64
}

// New returns a Server using f for every request and enc for encoded images
// when the request does not name an encoding.
func New(f steg.Format, enc steg.Encoding, logger *log.Logger) *Server {
	if enc == steg.EncodingUnknown {
		enc = steg.EncodingPNG
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Server{format: f, encoding: enc, logger: logger, maxPixels: defaultMaxPixels}
}

// Handler returns the routes of the API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/hide", s.handleHide)
	mux.HandleFunc("POST /api/dig", s.handleDig)
	mux.HandleFunc("POST /api/capacity", s.handleCapacity)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		io.WriteString(w, "ok")
	})
	return mux
}

// ListenAndServe serves the API on addr until it fails.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Printf("steg API → http://localhost%s", addr)
	return srv.ListenAndServe()
}

// ── Handlers ──

type digResponse struct {
	Message string `json:"message"`
	Found   bool   `json:"found"`
}

type capacityResponse struct {
	Width         int   `json:"width"`
	Height        int   `json:"height"`
	CapacityBits  int64 `json:"capacity_bits"`
	MaxMessageLen int   `json:"max_message_len"`
	Fits          *bool `json:"fits,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHide(w http.ResponseWriter, r *http.Request) {
	pixels, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	enc := s.encoding
	if name := r.FormValue("encoding"); name != "" {
		var err error
		if enc, err = steg.ParseEncoding(name); err != nil {
			s.writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	message := r.FormValue("message")
	encoded, err := steg.HidePixels(pixels, message, s.format)
	if err != nil {
		s.logger.Printf("hide: %v", err)
		s.writeError(w, statusFor(err), err)
		return
	}

	var buf bytes.Buffer
	if err := steg.WritePixels(&buf, encoded, enc); err != nil {
		s.logger.Printf("hide: encode %v: %v", enc, err)
		status := http.StatusInternalServerError
		var invalid *steg.InvalidFormatError
		if errors.As(err, &invalid) {
			status = http.StatusBadRequest
		}
		s.writeError(w, status, fmt.Errorf("encode %v: %w", enc, err))
		return
	}

	w.Header().Set("Content-Type", enc.MIMEType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="steg%s"`, enc.Ext()))
	w.Header().Set("X-Cover-Digest", pixels.DigestString())
	w.Write(buf.Bytes())
}

func (s *Server) handleDig(w http.ResponseWriter, r *http.Request) {
	pixels, ok := s.readUpload(w, r)
	if !ok {
		return
	}
	message, found := steg.Extract(pixels, s.format)
	s.writeJSON(w, http.StatusOK, digResponse{Message: message, Found: found})
}

func (s *Server) handleCapacity(w http.ResponseWriter, r *http.Request) {
	pixels, ok := s.readUpload(w, r)
	if !ok {
		return
	}
	resp := capacityResponse{
		Width:         pixels.W,
		Height:        pixels.H,
		CapacityBits:  steg.Capacity(pixels.W, pixels.H, s.format),
		MaxMessageLen: steg.MaxMessageLen(pixels.W, pixels.H, s.format),
	}
	if message := r.FormValue("message"); message != "" {
		fits := steg.CanEncode(message, pixels.W, pixels.H, s.format)
		resp.Fits = &fits
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// ── Helpers ──

// readUpload decodes the "image" part of a multipart request. It writes the
// error response itself and reports whether the caller may continue.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (*steg.Pixels, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("parse form: %w", err))
		return nil, false
	}
	file, _, err := r.FormFile("image")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("image: %w", err))
		return nil, false
	}
	defer file.Close()

	// The upload limit bounds the compressed bytes only; check the declared
	// dimensions before decoding the whole image.
	cfg, _, err := image.DecodeConfig(file)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, &steg.SourceUnavailableError{Err: err})
		return nil, false
	}
	if px := int64(cfg.Width) * int64(cfg.Height); px > s.maxPixels {
		s.writeError(w, http.StatusRequestEntityTooLarge,
			fmt.Errorf("image is %dx%d px, more than the %d pixels allowed", cfg.Width, cfg.Height, s.maxPixels))
		return nil, false
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		s.writeError(w, http.StatusInternalServerError, fmt.Errorf("rewind upload: %w", err))
		return nil, false
	}

	pixels, _, err := steg.ReadPixels(file)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return nil, false
	}
	return pixels, true
}

func statusFor(err error) int {
	var insufficient *steg.InsufficientCapacityError
	if errors.As(err, &insufficient) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Printf("write response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}
