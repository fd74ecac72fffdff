// Package httpapi exposes the engine's public operations over HTTP: sum a
// retention-time range into a spectrum, deconvolute a spectrum into
// components, detect singly-charged species, find chromatogram peaks, and
// compute theoretical charge-state m/z. It is a thin wrapper, the way
// webserver.go wraps InMAP's computation in handler funcs -- no business
// logic lives here, only request parsing, logging, and response encoding.
package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/spelveris/lcms-go/chrom"
	"github.com/spelveris/lcms-go/deconv"
	"github.com/spelveris/lcms-go/samplestore"
)

// Server serves the HTTP API. Store may be nil if sample-backed endpoints
// (sum_spectra, eic, tic, find_peaks) are not needed.
type Server struct {
	Store  *samplestore.Store
	Config deconv.Config

	Log logrus.FieldLogger
}

// NewServer returns a Server with the given store and deconvolution config.
// If log is nil, logrus.StandardLogger() is used.
func NewServer(store *samplestore.Store, cfg deconv.Config, log logrus.FieldLogger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Server{Store: store, Config: cfg, Log: log}
}

// Handler returns an http.Handler routing the API's endpoints.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/deconvolute", s.handleDeconvolute)
	mux.HandleFunc("/detect_singly_charged", s.handleDetectSinglyCharged)
	mux.HandleFunc("/theoretical_mz", s.handleTheoreticalMZ)
	mux.HandleFunc("/sum_spectra", s.handleSumSpectra)
	mux.HandleFunc("/tic", s.handleTIC)
	mux.HandleFunc("/eic", s.handleEIC)
	mux.HandleFunc("/find_peaks", s.handleFindPeaks)
	return mux
}

func (s *Server) logRequest(r *http.Request, op string) {
	s.Log.WithFields(logrus.Fields{
		"op":   op,
		"addr": r.RemoteAddr,
	}).Info("lcms-go request")
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

type spectrumRequest struct {
	MZ        []float64 `json:"mz"`
	Intensity []float64 `json:"intensity"`
}

func (s *Server) handleDeconvolute(w http.ResponseWriter, r *http.Request) {
	s.logRequest(r, "deconvolute")
	var req spectrumRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	spec := deconv.Spectrum{MZ: req.MZ, Intensity: req.Intensity}
	components := deconv.Deconvolute(spec, s.Config)
	writeJSON(w, components)
}

func (s *Server) handleDetectSinglyCharged(w http.ResponseWriter, r *http.Request) {
	s.logRequest(r, "detect_singly_charged")
	var req spectrumRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	spec := deconv.Spectrum{MZ: req.MZ, Intensity: req.Intensity}
	components := deconv.DetectSinglyCharged(spec, s.Config, nil)
	writeJSON(w, components)
}

func (s *Server) handleTheoreticalMZ(w http.ResponseWriter, r *http.Request) {
	s.logRequest(r, "theoretical_mz")
	q := r.URL.Query()
	mass, err := strconv.ParseFloat(q.Get("mass"), 64)
	if err != nil {
		http.Error(w, "invalid mass: "+err.Error(), http.StatusBadRequest)
		return
	}
	lo, err := strconv.Atoi(q.Get("min_charge"))
	if err != nil {
		http.Error(w, "invalid min_charge: "+err.Error(), http.StatusBadRequest)
		return
	}
	hi, err := strconv.Atoi(q.Get("max_charge"))
	if err != nil {
		http.Error(w, "invalid max_charge: "+err.Error(), http.StatusBadRequest)
		return
	}
	charges := make([]uint16, 0, hi-lo+1)
	for z := lo; z <= hi; z++ {
		charges = append(charges, uint16(z))
	}
	result := deconv.TheoreticalMZ(mass, charges, s.Config.UseMonoisotopicProton)
	writeJSON(w, result)
}

func (s *Server) sampleFromQuery(r *http.Request) (chrom.Sample, error) {
	return s.Store.Load(r.URL.Query().Get("sample"))
}

func (s *Server) handleSumSpectra(w http.ResponseWriter, r *http.Request) {
	s.logRequest(r, "sum_spectra")
	sample, err := s.sampleFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	q := r.URL.Query()
	tStart, err := strconv.ParseFloat(q.Get("t_start"), 64)
	if err != nil {
		http.Error(w, "invalid t_start: "+err.Error(), http.StatusBadRequest)
		return
	}
	tEnd, err := strconv.ParseFloat(q.Get("t_end"), 64)
	if err != nil {
		http.Error(w, "invalid t_end: "+err.Error(), http.StatusBadRequest)
		return
	}
	mz, intensity, err := chrom.SumSpectraInRange(sample, tStart, tEnd)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, spectrumRequest{MZ: mz, Intensity: intensity})
}

func (s *Server) handleTIC(w http.ResponseWriter, r *http.Request) {
	s.logRequest(r, "tic")
	sample, err := s.sampleFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, chrom.TIC(sample))
}

func (s *Server) handleEIC(w http.ResponseWriter, r *http.Request) {
	s.logRequest(r, "eic")
	sample, err := s.sampleFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	q := r.URL.Query()
	target, err := strconv.ParseFloat(q.Get("mz"), 64)
	if err != nil {
		http.Error(w, "invalid mz: "+err.Error(), http.StatusBadRequest)
		return
	}
	window, err := strconv.ParseFloat(q.Get("window"), 64)
	if err != nil {
		http.Error(w, "invalid window: "+err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, chrom.EIC(sample, target, window))
}

func (s *Server) handleFindPeaks(w http.ResponseWriter, r *http.Request) {
	s.logRequest(r, "find_peaks")
	sample, err := s.sampleFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	tic := chrom.TIC(sample)
	peaks := chrom.FindPeaks(sample.Times, tic, 0, 0)
	writeJSON(w, peaks)
}
