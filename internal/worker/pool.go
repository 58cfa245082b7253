package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/janamirelly/varejosync-poc/internal/model"
	"github.com/janamirelly/varejosync-poc/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const QueueAuditoria = "jobs:auditoria"

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// AuditoriaPayload é o registro de auditoria em trânsito pela fila.
type AuditoriaPayload struct {
	IDUsuario *int64  `json:"id_usuario"`
	Acao      string  `json:"acao"`
	Recurso   string  `json:"recurso"`
	Detalhes  *string `json:"detalhes,omitempty"`
	IP        *string `json:"ip,omitempty"`
	UserAgent *string `json:"user_agent,omitempty"`
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueAuditoria envia um registro de auditoria para a fila. Fire and
// forget: o erro é logado pelo chamador e nunca propaga para a transação
// de negócio.
func (d *Dispatcher) EnqueueAuditoria(ctx context.Context, payload AuditoriaPayload) error {
	return d.enqueue(ctx, QueueAuditoria, "auditoria", payload)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: jobType, Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// StartWorkerPool launches numWorkers goroutines consuming the audit queue.
// Each goroutine blocks on BRPOP — zero CPU when idle.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, auditorias repository.AuditoriaRepository, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, auditorias, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, auditorias repository.AuditoriaRepository, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, QueueAuditoria).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, auditorias, result[1])
		}
	}
}

func processJob(ctx context.Context, auditorias repository.AuditoriaRepository, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Err(err).Msg("failed to unmarshal job")
		return
	}
	var payload AuditoriaPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		log.Error().Err(err).Msg("failed to unmarshal audit payload")
		return
	}
	reg := &model.Auditoria{
		IDUsuario: payload.IDUsuario,
		Acao:      payload.Acao,
		Recurso:   payload.Recurso,
		Detalhes:  payload.Detalhes,
		IP:        payload.IP,
		UserAgent: payload.UserAgent,
	}
	if err := auditorias.Create(ctx, reg); err != nil {
		// Auditoria nunca derruba nada; perda é tolerada e logada.
		log.Error().Err(err).Str("acao", payload.Acao).Msg("failed to persist audit record")
	}
}
