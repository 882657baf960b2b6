package research

import (
	"context"
	"log"
	"time"

	"github.com/AIDataFireGirl/investsight/pkg/models"
	"github.com/AIDataFireGirl/investsight/pkg/utils"
)

// ResearchMany researches tickers sequentially for comparison. A
// ticker that fails lands in the Errors map instead of aborting the
// rest of the set.
func (p *Pipeline) ResearchMany(ctx context.Context, tickers []string, opts Options) *models.ComparativeResearch {
	out := &models.ComparativeResearch{
		Results:      make(map[string]*models.ResearchResult),
		Errors:       make(map[string]string),
		ResearchDate: time.Now(),
		Researched:   len(tickers),
	}

	for _, t := range tickers {
		res, err := p.Research(ctx, t, opts)
		if err != nil {
			log.Printf("[ERROR] comparative research %s: %v", t, err)
			key := utils.NormalizeTicker(t)
			if key == "" {
				key = t
			}
			out.Errors[key] = err.Error()
			continue
		}
		out.Results[res.Ticker] = res
	}
	return out
}
