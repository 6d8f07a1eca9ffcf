package pumpd

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/mdouchement/logger"
	"github.com/mdouchement/pumpd/button"
	"github.com/rs/xid"
)

var errStopped = errors.New("controller stopped")

// Handler returns the control API.
func (c *Controller) Handler(log logger.Logger) http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/monitor", c.monitor(log)).Methods(http.MethodGet)
	r.HandleFunc("/panel", c.getPanel).Methods(http.MethodGet)
	r.HandleFunc("/settings", c.getSettings).Methods(http.MethodGet)
	r.HandleFunc("/input/{button}", c.postInput(log)).Methods(http.MethodPost)
	r.Handle("/metrics", c.metrics.handler()).Methods(http.MethodGet)
	return r
}

func (c *Controller) current() (Panel, error) {
	reply := make(chan Panel, 1)
	if !c.emit(event{name: eventCurrent, reply: reply}) {
		return Panel{}, errStopped
	}

	select {
	case p := <-reply:
		return p, nil
	case <-c.done:
		return Panel{}, errStopped
	}
}

func (c *Controller) getPanel(w http.ResponseWriter, _ *http.Request) {
	p, err := c.current()
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, p)
}

func (c *Controller) getSettings(w http.ResponseWriter, _ *http.Request) {
	p, err := c.current()
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, p.Settings)
}

func (c *Controller) postInput(log logger.Logger) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := button.ParseButton(mux.Vars(r)["button"])
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		log.Debug("Remote press: " + b.String())
		c.input.Press(b)
		w.WriteHeader(http.StatusNoContent)
	}
}

func (c *Controller) monitor(log logger.Logger) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		id := xid.New().String()
		log.Infof("Client %s connected", id)

		// Set http headers required for SSE.
		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		disconnected := r.Context().Done()

		ch := make(chan []byte, 20)
		if !c.emit(event{name: eventWatch, monitorID: id, monitor: ch}) {
			http.Error(w, errStopped.Error(), http.StatusServiceUnavailable)
			return
		}

		rc := http.NewResponseController(w)
		for {
			select {
			case <-disconnected:
				log.Infof("Client %s disconnected", id)
				c.emit(event{name: eventUnwatch, monitorID: id})
				return
			case payload, ok := <-ch:
				if !ok {
					return
				}

				_, err := w.Write(append(payload, '\n', '\n'))
				if err != nil {
					log.WithError(err).Error("Could not write monitor SSE payload")
					c.emit(event{name: eventUnwatch, monitorID: id})
					return
				}

				err = rc.Flush()
				if err != nil {
					log.WithError(err).Error("Could not flush monitor SSE payload")
					c.emit(event{name: eventUnwatch, monitorID: id})
					return
				}
			}
		}
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
