package data

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/monitor_finder/app/finder/internal/biz"
	"github.com/iWorld-y/monitor_finder/app/finder/pkg/analysis"
)

type sessionRepo struct {
	data *Data
	log  *log.Helper
}

// NewSessionRepo .
func NewSessionRepo(data *Data, logger log.Logger) biz.SessionRepo {
	return &sessionRepo{data: data, log: log.NewHelper(logger)}
}

// SaveAnalysis 覆盖会话中上一次的分析结果，顺带清理过期会话
func (r *sessionRepo) SaveAnalysis(_ context.Context, sessionID string, res *analysis.Result) error {
	d := r.data
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	for id, e := range d.sessions {
		if now.After(e.expires) {
			delete(d.sessions, id)
		}
	}
	d.sessions[sessionID] = entry{result: res, expires: now.Add(d.ttl)}
	r.log.Debugf("saved analysis for session %s (%d active)", sessionID, len(d.sessions))
	return nil
}

func (r *sessionRepo) GetAnalysis(_ context.Context, sessionID string) (*analysis.Result, error) {
	d := r.data
	d.mu.Lock()
	defer d.mu.Unlock()

	e, ok := d.sessions[sessionID]
	if !ok {
		return nil, biz.ErrAnalysisNotFound
	}
	if d.now().After(e.expires) {
		delete(d.sessions, sessionID)
		return nil, biz.ErrAnalysisNotFound
	}
	return e.result, nil
}
