package biz

import (
	"context"
	"errors"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/monitor_finder/app/finder/pkg/analysis"
	"github.com/iWorld-y/monitor_finder/app/finder/pkg/catalogue"
	"github.com/iWorld-y/monitor_finder/app/finder/pkg/engine"
	"github.com/iWorld-y/monitor_finder/app/finder/pkg/report"
)

// ErrAnalysisNotFound 当前会话还没有分析结果
var ErrAnalysisNotFound = errors.New("no analysis stored for session")

// SessionRepo 会话内的最近一次分析
type SessionRepo interface {
	SaveAnalysis(ctx context.Context, sessionID string, res *analysis.Result) error
	GetAnalysis(ctx context.Context, sessionID string) (*analysis.Result, error)
}

type FinderUseCase struct {
	eng  *engine.Engine
	repo SessionRepo
	log  *log.Helper
}

func NewFinderUseCase(eng *engine.Engine, repo SessionRepo, logger log.Logger) *FinderUseCase {
	return &FinderUseCase{eng: eng, repo: repo, log: log.NewHelper(logger)}
}

func (uc *FinderUseCase) Status() engine.Status {
	return uc.eng.Status()
}

func (uc *FinderUseCase) Catalogue() *catalogue.Catalogue {
	return uc.eng.Catalogue()
}

func (uc *FinderUseCase) Specs(sel catalogue.Selection) (*report.Document, error) {
	return uc.eng.Specs(sel)
}

func (uc *FinderUseCase) Compare(sel catalogue.Selection) (*report.Comparison, error) {
	return uc.eng.Compare(sel)
}

func (uc *FinderUseCase) BuildQuery(ctx context.Context, opts engine.QueryOptions) (*engine.QueryResult, error) {
	return uc.eng.BuildQuery(ctx, opts)
}

func (uc *FinderUseCase) Search(ctx context.Context, opts engine.SearchOptions) (*engine.SearchResult, error) {
	return uc.eng.Search(ctx, opts)
}

// Analyze 运行分析并覆盖会话中的上一次结果。失败时致歉文本同样会被保存
func (uc *FinderUseCase) Analyze(ctx context.Context, sessionID string, sel catalogue.Selection, t analysis.Type) (*analysis.Result, error) {
	res, err := uc.eng.Analyze(ctx, sel, t)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.SaveAnalysis(ctx, sessionID, res); err != nil {
		uc.log.Errorf("save analysis for session %s: %v", sessionID, err)
		return nil, err
	}
	return res, nil
}

// AnalysisDocument 会话中最近一次分析的导出文档
func (uc *FinderUseCase) AnalysisDocument(ctx context.Context, sessionID string) (*report.AnalysisDocument, error) {
	if sessionID == "" {
		return nil, ErrAnalysisNotFound
	}
	res, err := uc.repo.GetAnalysis(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return uc.eng.AnalysisDocument(res), nil
}
