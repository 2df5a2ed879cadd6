package api

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"phishguard/backend/internal/ai"
	"phishguard/backend/internal/features"
	"phishguard/backend/internal/scoring"
	"phishguard/backend/internal/util"
)

// scan runs the full pipeline for one request. The heuristic score and the
// GenAI assessment run concurrently; any failure aborts the scan and no
// partial result is returned.
func (s *Server) scan(ctx context.Context, req ScanRequest, log *logrus.Entry) (ScanResponse, error) {
	if s.analyzer == nil || !s.analyzer.Enabled() {
		return ScanResponse{}, ai.ErrDisabled
	}

	timer := util.StartTimer()
	feats := features.Extract(req.URL)

	var (
		ml         scoring.HeuristicResult
		assessment ai.Assessment
		aiElapsed  int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ml = scoring.ScoreHeuristics(feats)
		return nil
	})
	g.Go(func() error {
		aiTimer := util.StartTimer()
		result, err := s.analyzer.Analyze(gctx, req.analysisInput(feats))
		aiElapsed = aiTimer.ElapsedMs()
		if err != nil {
			return fmt.Errorf("genai analysis: %w", err)
		}
		assessment = result
		return nil
	})
	if err := g.Wait(); err != nil {
		log.WithError(err).WithFields(logrus.Fields{
			"host":     feats.Host,
			"ai_ms":    aiElapsed,
			"total_ms": timer.ElapsedMs(),
		}).Warn("scan failed")
		return ScanResponse{}, err
	}

	resp := buildResponse(req, feats, ml, assessment)
	log.WithFields(logrus.Fields{
		"host":          feats.Host,
		"registrable":   features.RegistrableDomain(feats.Host),
		"verdict":       resp.Verdict,
		"risk_score":    resp.RiskScore,
		"ml_score":      resp.MLScore,
		"genai_score":   resp.GenAIScore,
		"genai_verdict": assessment.Verdict,
		"ai_ms":         aiElapsed,
		"total_ms":      timer.ElapsedMs(),
	}).Info("scan completed")
	return resp, nil
}
