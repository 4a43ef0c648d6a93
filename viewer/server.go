package viewer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/banshee-data/posekit"
)

// Server serves the interactive skeleton view for a sequence of frames.
// The topology, colours and frames are fixed at construction; the server
// only ever reads them, so it needs no locking.
type Server struct {
	addr    string
	topo    *posekit.Topology
	colours *posekit.ColourMap
	frames  [][][]float64
}

// New builds a viewer server for the given frame sequence.
func New(addr string, topo *posekit.Topology, colours *posekit.ColourMap, frames [][][]float64) *Server {
	return &Server{
		addr:    addr,
		topo:    topo,
		colours: colours,
		frames:  frames,
	}
}

// ServeMux returns the route table, exposed for tests and embedding.
func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleSkeleton)
	mux.HandleFunc("/frames", s.handleFrameCount)
	return mux
}

// ListenAndServe runs the server until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s.ServeMux()}
	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// handleSkeleton renders one frame of the sequence as an interactive 3D
// page. Query params:
//   - frame     frame number (default 0)
//   - sections  comma-separated section names (default "full")
func (s *Server) handleSkeleton(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	frame := 0
	if f := r.URL.Query().Get("frame"); f != "" {
		v, err := strconv.Atoi(f)
		if err != nil || v < 0 || v >= len(s.frames) {
			s.writeJSONError(w, http.StatusBadRequest, "frame out of range")
			return
		}
		frame = v
	}

	mask := posekit.Full
	if sec := r.URL.Query().Get("sections"); sec != "" {
		m, err := posekit.ParseSections(sec)
		if err != nil {
			s.writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		mask = m
	}

	if len(s.frames) == 0 {
		s.writeJSONError(w, http.StatusNotFound, "no frames loaded")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := RenderHTML(w, s.topo, s.colours, s.frames[frame], mask); err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) handleFrameCount(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int{"frames": len(s.frames)})
}

func (s *Server) writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
