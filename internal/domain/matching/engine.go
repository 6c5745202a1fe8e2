package matching

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pet-lost-found/internal/domain/notifications"
	"pet-lost-found/internal/domain/reports"
	"pet-lost-found/internal/platform/logger"
	"pet-lost-found/internal/platform/metrics"
)

const (
	DefaultMinScore    = 50.0
	DefaultScanTopN    = 5
	DefaultTriggerTopN = 10
)

// Policy son los umbrales del motor (vienen de config).
type Policy struct {
	MinScore    float64
	ScanTopN    int
	TriggerTopN int
}

func DefaultPolicy() Policy {
	return Policy{MinScore: DefaultMinScore, ScanTopN: DefaultScanTopN, TriggerTopN: DefaultTriggerTopN}
}

func (p Policy) normalized() Policy {
	if p.MinScore <= 0 || p.MinScore > 100 {
		p.MinScore = DefaultMinScore
	}
	if p.ScanTopN <= 0 {
		p.ScanTopN = DefaultScanTopN
	}
	if p.TriggerTopN <= 0 {
		p.TriggerTopN = DefaultTriggerTopN
	}
	return p
}

// Notifier emite notificaciones de match (notifications.Service).
type Notifier interface {
	Emit(ctx context.Context, in notifications.EmitInput) (notifications.Notification, error)
}

const (
	triggerLost  = "lost_report"
	triggerFound = "found_report"
	triggerScan  = "scan"
)

// Engine orquesta finder + manager y los efectos de un match nuevo.
// Implementa reports.Matcher.
type Engine struct {
	reports  reports.Repository
	matches  Repository
	finder   *Finder
	manager  *Manager
	notifier Notifier
	policy   Policy
	log      logger.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
}

type EngineOptions struct {
	Policy   Policy
	Notifier Notifier // nil = sin notificaciones
	Logger   logger.Logger
	Metrics  *metrics.Metrics
}

func NewEngine(reportsRepo reports.Repository, matchRepo Repository, opts EngineOptions) *Engine {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Engine{
		reports:  reportsRepo,
		matches:  matchRepo,
		finder:   NewFinder(reportsRepo, matchRepo),
		manager:  NewManager(matchRepo),
		notifier: opts.Notifier,
		policy:   opts.Policy.normalized(),
		log:      log.With(map[string]any{"component": "matching"}),
		metrics:  opts.Metrics,
		now:      time.Now,
	}
}

func (e *Engine) Policy() Policy { return e.policy }

// CheckOwnLostPet rechaza el found report si alguno de los lost reports activos del mismo usuario
// supera el umbral contra él.
func (e *Engine) CheckOwnLostPet(ctx context.Context, draft reports.FoundReport) error {
	own, err := e.reports.ListLost(ctx, reports.LostFilter{
		OwnerID: draft.ReporterID,
		Status:  reports.StatusActive,
		Species: draft.Species,
	})
	if err != nil {
		return err
	}
	for _, lr := range own {
		if Score(lr, draft).Score >= e.policy.MinScore {
			return reports.ErrOwnLostPet
		}
	}
	return nil
}

// OnLostReported vincula el lost report recién creado con sus mejores candidatos.
// Los errores se loguean: la creación del reporte no falla por el matching.
func (e *Engine) OnLostReported(ctx context.Context, lost reports.LostReport) {
	cands, err := e.finder.FindForLost(ctx, lost, e.policy.MinScore)
	if err != nil {
		e.log.Error("find candidates failed", map[string]any{"lost_report_id": lost.ID, "error": err})
		return
	}
	e.linkTop(ctx, cands, e.policy.TriggerTopN, triggerLost)
}

func (e *Engine) OnFoundReported(ctx context.Context, found reports.FoundReport) {
	cands, err := e.finder.FindForFound(ctx, found, e.policy.MinScore)
	if err != nil {
		e.log.Error("find candidates failed", map[string]any{"found_report_id": found.ID, "error": err})
		return
	}
	e.linkTop(ctx, cands, e.policy.TriggerTopN, triggerFound)
}

func (e *Engine) linkTop(ctx context.Context, cands []Candidate, limit int, trigger string) {
	if len(cands) > limit {
		cands = cands[:limit]
	}
	for _, c := range cands {
		if _, _, err := e.link(ctx, c.Lost, c.Found, trigger); err != nil {
			e.log.Error("link match failed", map[string]any{
				"lost_report_id": c.Lost.ID, "found_report_id": c.Found.ID, "trigger": trigger, "error": err,
			})
		}
	}
}

// link crea (o re-puntúa) el match. Solo un match nuevo notifica.
// Los reportes pasan a matched con escritura condicional: si alguno se cerró mientras tanto
// el match nuevo se retira como rejected y no se notifica.
func (e *Engine) link(ctx context.Context, lost reports.LostReport, found reports.FoundReport, trigger string) (*Match, bool, error) {
	lost, found, open, err := e.reload(ctx, lost, found)
	if err != nil || !open {
		return nil, false, err
	}

	m, created, err := e.manager.CreateMatch(ctx, lost, found, e.policy.MinScore)
	if err != nil {
		return nil, false, err
	}
	if m == nil {
		return nil, false, nil
	}
	if !created {
		e.metrics.MatchRescored(trigger)
		return m, false, nil
	}

	if closed := e.markMatched(ctx, *m, lost.ID, found.ID); closed {
		e.withdraw(ctx, *m)
		return m, false, nil
	}
	e.metrics.MatchCreated(trigger)

	e.log.Info("match created", map[string]any{
		"match_id": m.ID, "lost_report_id": lost.ID, "found_report_id": found.ID,
		"score": m.Score, "trigger": trigger,
	})

	e.notifyFound(ctx, *m, lost, found)
	return m, true, nil
}

// reload relee ambos reportes: los candidatos vienen de una consulta anterior.
func (e *Engine) reload(ctx context.Context, lost reports.LostReport, found reports.FoundReport) (reports.LostReport, reports.FoundReport, bool, error) {
	freshLost, err := e.reports.GetLost(ctx, lost.ID)
	if err != nil {
		return lost, found, false, fmt.Errorf("reload lost report: %w", err)
	}
	freshFound, err := e.reports.GetFound(ctx, found.ID)
	if err != nil {
		return lost, found, false, fmt.Errorf("reload found report: %w", err)
	}
	open := reports.CanTransition(freshLost.Status, reports.StatusMatched) &&
		reports.CanTransition(freshFound.Status, reports.StatusMatched)
	return freshLost, freshFound, open, nil
}

// markMatched pasa ambos reportes a matched. Devuelve true si alguno ya estaba cerrado.
// Otras fallas se loguean y no cortan: el match existe y se notifica igual.
func (e *Engine) markMatched(ctx context.Context, m Match, lostID, foundID string) bool {
	now := e.now()
	fields := map[string]any{"match_id": m.ID, "lost_report_id": lostID, "found_report_id": foundID}

	if err := e.reports.SetLostStatus(ctx, lostID, reports.StatusMatched, now); err != nil {
		if errors.Is(err, reports.ErrBadState) {
			return true
		}
		e.log.Error("mark lost report matched failed", withErr(fields, err))
	}
	if err := e.reports.SetFoundStatus(ctx, foundID, reports.StatusMatched, now); err != nil {
		if errors.Is(err, reports.ErrBadState) {
			return true
		}
		e.log.Error("mark found report matched failed", withErr(fields, err))
	}
	return false
}

// withdraw cierra un match recién creado cuyo reporte ya no está abierto.
func (e *Engine) withdraw(ctx context.Context, m Match) {
	_, err := e.matches.Mutate(ctx, m.ID, func(x *Match) error {
		if x.Status.IsTerminal() {
			return nil
		}
		x.Status = StatusRejected
		x.UpdatedAt = e.now()
		return nil
	})
	fields := map[string]any{"match_id": m.ID, "lost_report_id": m.LostReportID, "found_report_id": m.FoundReportID}
	if err != nil {
		e.log.Error("withdraw match failed", withErr(fields, err))
		return
	}
	e.log.Info("match withdrawn, report closed meanwhile", fields)
}

func withErr(fields map[string]any, err error) map[string]any {
	out := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		out[k] = v
	}
	out["error"] = err
	return out
}

func (e *Engine) notifyFound(ctx context.Context, m Match, lost reports.LostReport, found reports.FoundReport) {
	name := petName(lost)
	e.emit(ctx, notifications.EmitInput{
		MatchID: m.ID,
		UserID:  lost.OwnerID,
		Type:    notifications.TypeMatchFound,
		Title:   "Potential match for your lost pet",
		Message: fmt.Sprintf("A pet matching %q may have been found. Check the match details.", name),
	})
	e.emit(ctx, notifications.EmitInput{
		MatchID: m.ID,
		UserID:  found.ReporterID,
		Type:    notifications.TypeMatchFound,
		Title:   "Potential match for a found pet",
		Message: "A lost pet report may match a pet you found. Check the match details.",
	})
}

func (e *Engine) emit(ctx context.Context, in notifications.EmitInput) {
	if e.notifier == nil {
		return
	}
	if _, err := e.notifier.Emit(ctx, in); err != nil {
		e.log.Warn("notification failed", map[string]any{
			"match_id": in.MatchID, "user_id": in.UserID, "type": string(in.Type), "error": err,
		})
	}
}

func petName(lost reports.LostReport) string {
	if lost.Pet == nil || lost.Pet.Name == "" {
		return "your pet"
	}
	return lost.Pet.Name
}
