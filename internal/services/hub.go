package services

import (
	"encoding/json"
	"log"
	"math"
	"runtime/debug"
	"sync/atomic"

	"github.com/ckp1990/population-ecology-games/internal/config"
	"github.com/ckp1990/population-ecology-games/internal/models"
	"github.com/ckp1990/population-ecology-games/internal/security"
)

// Hub is the session coordinator: the single owner of all shared survey
// state. Every inbound event — join, move, camera trigger, phase control,
// disconnect — is funneled through its channels and handled to completion
// by the Run goroutine before the next one is dequeued, so handlers need
// no locks and every broadcast is a consistent snapshot.
//
// Nothing outside this goroutine mutates the directory, ledger, or phase;
// HTTP readers get the latest immutable snapshot via State.
type Hub struct {
	cfg *config.Config

	// Shared state, touched only by the Run goroutine after Run starts.
	directory *models.Directory
	ledger    *models.DetectionLedger
	phase     *models.PhaseMachine

	// Live connections keyed by connection identity.
	clients map[string]*Client

	register   chan *Client
	unregister chan *Client
	inbound    chan *ClientMessage

	// Latest full snapshot for HTTP consumers (metrics page, CSV export).
	latest atomic.Pointer[models.StatePayload]

	metrics *Metrics
}

func NewHub(cfg *config.Config) *Hub {
	h := &Hub{
		cfg:        cfg,
		directory:  models.NewDirectory(),
		ledger:     models.NewDetectionLedger(),
		phase:      models.NewPhaseMachine(),
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		inbound:    make(chan *ClientMessage, config.HubInboundBufferSize),
		metrics:    NewMetrics(),
	}
	h.latest.Store(h.buildState())
	return h
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.addClient(c)

		case c := <-h.unregister:
			h.removeClient(c)

		case msg := <-h.inbound:
			h.dispatch(msg)
		}
	}
}

// Register hands a new connection to the hub goroutine.
func (h *Hub) Register(c *Client) {
	h.register <- c
}

// Unregister removes a connection; safe to call more than once.
func (h *Hub) Unregister(c *Client) {
	h.unregister <- c
}

// GetMetrics returns a point-in-time metrics snapshot.
func (h *Hub) GetMetrics() MetricsSnapshot {
	return h.metrics.Snapshot()
}

// State returns the latest full snapshot. The payload is immutable once
// published; callers must not modify it.
func (h *Hub) State() *models.StatePayload {
	return h.latest.Load()
}

// SendToClient marshals and queues a message for one connection.
func (h *Hub) SendToClient(c *Client, msg *models.WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}
	c.Send(data)
}

func (h *Hub) addClient(c *Client) {
	h.clients[c.connID] = c
	h.metrics.IncrementConnections()
	log.Printf("✓ WebSocket registered: conn=%s (total connections: %d)", c.connID, len(h.clients))

	// Initial state sync so dashboards that never join still render.
	h.sendStateTo(c)
}

func (h *Hub) removeClient(c *Client) {
	if _, ok := h.clients[c.connID]; !ok {
		return
	}
	delete(h.clients, c.connID)
	h.metrics.DecrementConnections()
	c.Close()

	// The ledger record survives; only the live participant goes away, so
	// rejoining under the same name resumes the same detection history.
	h.directory.Remove(c.connID)
	log.Printf("WebSocket disconnected: conn=%s (total connections: %d)", c.connID, len(h.clients))
	h.broadcastState()
}

// dispatch decodes and handles one inbound event. A panic in a handler is
// contained here: the event is dropped and logged, the process and every
// other connection keep running.
func (h *Hub) dispatch(cm *ClientMessage) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("❌ Panic handling message from conn=%s: %v\n%s", cm.Client.connID, r, debug.Stack())
		}
	}()

	var msg models.InboundMessage
	if err := json.Unmarshal(cm.Raw, &msg); err != nil {
		log.Printf("Error unmarshaling message (conn=%s): %v", cm.Client.connID, err)
		return
	}

	switch msg.Type {
	case models.MsgTypeJoin:
		var p models.JoinPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return
		}
		h.handleJoin(cm.Client, p.Name)

	case models.MsgTypeMove:
		var p models.MovePayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return
		}
		h.handleMove(cm.Client, p.X, p.Y)

	case models.MsgTypeCameraTrigger:
		var p models.CameraTriggerPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return
		}
		h.handleCameraTrigger(cm.Client, p.DetectorID)

	case models.MsgTypeNextPhase:
		if !h.authorizeAdmin(cm.Client) {
			return
		}
		h.handleNextPhase()

	case models.MsgTypeResetGame:
		if !h.authorizeAdmin(cm.Client) {
			return
		}
		h.handleResetGame()

	default:
		log.Printf("Unknown message type %q (conn=%s)", msg.Type, cm.Client.connID)
	}
}

// authorizeAdmin gates the phase-control events. Today every connection
// may drive them — the facilitator runs the session from whichever screen
// is handy — so this is a single seam for a future role model, not a real
// check.
func (h *Hub) authorizeAdmin(c *Client) bool {
	return true
}

func (h *Hub) handleJoin(c *Client, rawName string) {
	name := security.SanitizeDisplayName(rawName)
	p := h.directory.Join(c.connID, name, h.cfg.SpawnX(), h.cfg.SpawnY())
	h.ledger.EnsureRecord(p.Name)
	log.Printf("✓ Participant joined: %s (conn=%s)", p.Name, c.connID)
	h.broadcastState()
}

func (h *Hub) handleMove(c *Client, x, y float64) {
	if !h.directory.UpdatePosition(c.connID, x, y) {
		// Move from a connection that never joined or already left.
		return
	}
	h.broadcastPlayers()
}

// handleCameraTrigger re-validates a claimed detection against the
// server-held position. The client's own proximity check is advisory
// only; a trigger farther than radius+tolerance from the station is
// dropped without any reply so nothing about the threshold leaks back.
func (h *Hub) handleCameraTrigger(c *Client, detectorID int) {
	p, ok := h.directory.Get(c.connID)
	if !ok {
		return
	}
	det, ok := h.cfg.DetectorByID(detectorID)
	if !ok {
		return
	}

	dist := math.Hypot(p.X-det.X, p.Y-det.Y)
	if dist > h.cfg.DetectionRadius+h.cfg.DetectionTolerance {
		h.metrics.IncrementDetectionsRejected()
		log.Printf("Rejected trigger: %s at %.1f from detector %d", p.Name, dist, det.ID)
		return
	}

	phase := h.phase.Current()
	if !h.ledger.MarkDetected(p.Name, phase) {
		// Already marked this phase, or the survey is in results:
		// idempotent no-op, nothing is emitted.
		return
	}
	h.metrics.IncrementDetectionsAccepted()

	h.broadcastMessage(&models.WSMessage{
		Type: models.MsgTypeCaptureEvent,
		Payload: models.CapturePayload{
			ParticipantName: p.Name,
			DetectorID:      det.ID,
			Phase:           phase,
		},
	})
	h.broadcastState()
}

func (h *Hub) handleNextPhase() {
	if h.phase.Advance() {
		log.Printf("Phase advanced to %s", h.phase.Current())
	}
	h.broadcastState()
}

// handleResetGame returns the phase to first-phase and clears every mark
// in the same handler, so no broadcast can pair a reset phase with stale
// marks.
func (h *Hub) handleResetGame() {
	h.phase.Reset()
	h.ledger.Reset()
	log.Printf("Survey reset")
	h.broadcastState()
}

func (h *Hub) buildState() *models.StatePayload {
	records := h.ledger.Records()
	return &models.StatePayload{
		Phase:           h.phase.Current(),
		Participants:    h.directory.Snapshot(),
		DetectionLedger: records,
		Detectors:       h.cfg.Detectors,
		EstimatorResult: models.ComputeEstimate(records),
	}
}

func (h *Hub) broadcastState() {
	state := h.buildState()
	h.latest.Store(state)
	h.broadcastMessage(&models.WSMessage{
		Type:    models.MsgTypeStateUpdate,
		Payload: state,
	})
}

func (h *Hub) broadcastPlayers() {
	h.broadcastMessage(&models.WSMessage{
		Type:    models.MsgTypePlayersUpdate,
		Payload: models.PlayersPayload{Participants: h.directory.Snapshot()},
	})
}

func (h *Hub) broadcastMessage(msg *models.WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}
	for _, c := range h.clients {
		c.Send(data)
	}
}

func (h *Hub) sendStateTo(c *Client) {
	state := h.buildState()
	h.latest.Store(state)
	h.SendToClient(c, &models.WSMessage{
		Type:    models.MsgTypeStateUpdate,
		Payload: state,
	})
}
