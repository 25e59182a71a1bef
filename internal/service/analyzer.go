// Package service wires the normalization, consensus, and EV engines into
// the full analysis pipeline: raw payloads in, ranked opportunities out.
package service

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	cache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/prop-edge/internal/config"
	"github.com/yourusername/prop-edge/internal/consensus"
	"github.com/yourusername/prop-edge/internal/ev"
	"github.com/yourusername/prop-edge/internal/metrics"
	"github.com/yourusername/prop-edge/internal/models"
	"github.com/yourusername/prop-edge/internal/normalizer"
)

// Opportunity is one prop group's best entry: the chosen book and side with
// its EV assessment, plus the consensus context and the contributing quotes
// copied by value for audit and drill-down.
type Opportunity struct {
	PlayerID      string                 `json:"player_id"`
	PlayerName    string                 `json:"player_name"`
	Sport         string                 `json:"sport"`
	StatType      string                 `json:"stat_type"`
	Line          float64                `json:"line"`
	Side          models.Side            `json:"side"`
	Sportsbook    string                 `json:"sportsbook"`
	OfferedOdds   int                    `json:"offered_odds"`
	Consensus     models.ConsensusResult `json:"consensus"`
	Result        models.EVResult        `json:"result"`
	KellyFraction float64                `json:"kelly_fraction"`
	BookResults   []ev.QuoteEval         `json:"book_results"`
	Quotes        []models.OddsQuote     `json:"quotes"`
}

// Report is the output of one analysis run: opportunities ranked by EV
// descending, ties broken by confidence then sportsbook name.
type Report struct {
	ID            uuid.UUID     `json:"id"`
	GeneratedAt   time.Time     `json:"generated_at"`
	Normalized    int           `json:"normalized"`
	Dropped       int           `json:"dropped"`
	SkippedGroups int           `json:"skipped_groups"`
	Opportunities []Opportunity `json:"opportunities"`
}

// Analyzer runs the raw quote → normalized prop → consensus → EV pipeline.
// It is stateless apart from a consensus memoization cache; analyses of
// independent groups never interact.
type Analyzer struct {
	normalizer *normalizer.Normalizer
	consensus  *consensus.Engine
	ev         *ev.Engine
	cache      *cache.Cache
	logger     *logrus.Logger
}

// NewAnalyzer builds an analyzer from configuration.
func NewAnalyzer(cfg *config.Config, logger *logrus.Logger) *Analyzer {
	consensusEngine := consensus.NewEngine(logger)
	consensusEngine.MinQuotes = cfg.Analysis.MinQuotesForConsensus

	evEngine := ev.NewEngine()
	evEngine.Stake = cfg.Analysis.Stake
	evEngine.StrongEdge = cfg.Analysis.StrongEdgePercent
	evEngine.ModerateEdge = cfg.Analysis.ModerateEdgePercent

	ttl := cfg.Analysis.CacheTTL()
	if ttl <= 0 {
		ttl = time.Minute
	}

	return &Analyzer{
		normalizer: normalizer.New(logger),
		consensus:  consensusEngine,
		ev:         evEngine,
		cache:      cache.New(ttl, 2*ttl),
		logger:     logger,
	}
}

// Analyze normalizes raw payloads, folds them into prop groups, computes a
// consensus per group, scores every book and side against it, and returns
// the ranked opportunities. Record-level failures are skipped and counted;
// groups below the configured minimum sample size are skipped, not errors.
func (a *Analyzer) Analyze(raws []json.RawMessage, sportsbookHint string) (*Report, error) {
	start := time.Now()

	props, dropped := a.normalizeAll(raws, sportsbookHint)
	groups := GroupQuotes(props)

	report := &Report{
		ID:          uuid.New(),
		GeneratedAt: start.UTC(),
		Normalized:  len(props),
		Dropped:     dropped,
	}

	for _, key := range sortedKeys(groups) {
		quotes := groups[key]
		cons, err := a.consensusFor(key, quotes)
		if err != nil {
			report.SkippedGroups++
			metrics.RecordGroupSkipped()
			a.logger.WithFields(logrus.Fields{
				"group":  key,
				"quotes": len(quotes),
			}).WithError(err).Debug("Skipping group")
			continue
		}

		evals, err := a.ev.EvaluateGroup(cons, quotes)
		if err != nil {
			return nil, fmt.Errorf("evaluating group %s: %w", key, err)
		}
		metrics.RecordGroupAnalyzed()

		opportunity, err := a.buildOpportunity(cons, quotes, evals)
		if err != nil {
			return nil, fmt.Errorf("building opportunity for %s: %w", key, err)
		}
		metrics.RecordOpportunity(string(opportunity.Result.Rating))
		report.Opportunities = append(report.Opportunities, opportunity)
	}

	rankOpportunities(report.Opportunities)

	metrics.RecordAnalysisDuration(time.Since(start).Seconds())
	a.logger.WithFields(logrus.Fields{
		"report_id":     report.ID,
		"normalized":    report.Normalized,
		"dropped":       report.Dropped,
		"groups":        len(groups),
		"opportunities": len(report.Opportunities),
	}).Info("Analysis complete")

	return report, nil
}

// normalizeAll is batch normalization with drop accounting: every record is
// normalized independently and failures are skipped, never fatal.
func (a *Analyzer) normalizeAll(raws []json.RawMessage, hint string) ([]models.NormalizedProp, int) {
	var props []models.NormalizedProp
	dropped := 0
	for _, raw := range raws {
		normalized := a.normalizer.NormalizeAll(raw, hint)
		if len(normalized) == 0 {
			dropped++
			continue
		}
		for i := range normalized {
			if a.normalizer.Validate(&normalized[i]) {
				props = append(props, normalized[i])
			} else {
				dropped++
			}
		}
	}
	metrics.RecordNormalized(len(props))
	metrics.RecordDropped(dropped)
	return props, dropped
}

// consensusFor memoizes consensus computation per group fingerprint so
// repeated analyses over the same snapshot skip the arithmetic.
func (a *Analyzer) consensusFor(key string, quotes []models.OddsQuote) (models.ConsensusResult, error) {
	fp := fingerprint(key, quotes)
	if cached, found := a.cache.Get(fp); found {
		metrics.RecordConsensusCacheHit()
		if cons, ok := cached.(models.ConsensusResult); ok {
			return cons, nil
		}
	}
	cons, err := a.consensus.ComputeConsensus(quotes)
	if err != nil {
		return models.ConsensusResult{}, err
	}
	a.cache.Set(fp, cons, cache.DefaultExpiration)
	return cons, nil
}

func (a *Analyzer) buildOpportunity(cons models.ConsensusResult, quotes []models.OddsQuote, evals []ev.QuoteEval) (Opportunity, error) {
	best := evals[0]
	first := quotes[0]

	kelly, err := a.ev.CalculateKelly(best.Result.TrueProbability, best.OfferedOdds)
	if err != nil {
		return Opportunity{}, err
	}

	quotesCopy := make([]models.OddsQuote, len(quotes))
	copy(quotesCopy, quotes)

	return Opportunity{
		PlayerID:      first.PlayerID,
		PlayerName:    first.PlayerName,
		Sport:         first.Sport,
		StatType:      first.StatType,
		Line:          first.Line,
		Side:          best.Side,
		Sportsbook:    best.Sportsbook,
		OfferedOdds:   best.OfferedOdds,
		Consensus:     cons,
		Result:        best.Result,
		KellyFraction: kelly,
		BookResults:   evals,
		Quotes:        quotesCopy,
	}, nil
}

// GroupQuotes folds normalized props into an append-only mapping from group
// key (player, stat type, line) to the quotes pricing that event.
func GroupQuotes(props []models.NormalizedProp) map[string][]models.OddsQuote {
	groups := make(map[string][]models.OddsQuote)
	for _, p := range props {
		key := p.GroupKey()
		groups[key] = append(groups[key], p)
	}
	return groups
}

// BuildLegs converts opportunities into parlay legs using the chosen side's
// true probability, so the CLI can chain analysis into parlay evaluation.
func BuildLegs(opportunities []Opportunity) []models.ParlayLeg {
	legs := make([]models.ParlayLeg, 0, len(opportunities))
	for _, op := range opportunities {
		legs = append(legs, models.ParlayLeg{
			PlayerID:    op.PlayerID,
			StatType:    op.StatType,
			Probability: op.Result.TrueProbability,
		})
	}
	return legs
}

func rankOpportunities(ops []Opportunity) {
	sort.Slice(ops, func(i, j int) bool {
		if ops[i].Result.ExpectedValue != ops[j].Result.ExpectedValue {
			return ops[i].Result.ExpectedValue > ops[j].Result.ExpectedValue
		}
		if ops[i].Consensus.Confidence != ops[j].Consensus.Confidence {
			return ops[i].Consensus.Confidence > ops[j].Consensus.Confidence
		}
		return ops[i].Sportsbook < ops[j].Sportsbook
	})
}

func sortedKeys(groups map[string][]models.OddsQuote) []string {
	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// fingerprint identifies one group snapshot: the key plus every book's
// odds, order-independent.
func fingerprint(key string, quotes []models.OddsQuote) string {
	parts := make([]string, 0, len(quotes))
	for _, q := range quotes {
		parts = append(parts, fmt.Sprintf("%s:%d:%d", q.Sportsbook, q.OverOdds, q.UnderOdds))
	}
	sort.Strings(parts)
	return key + "|" + strings.Join(parts, ",")
}
