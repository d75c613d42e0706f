package book

import (
	"github.com/quirelab/quire/config"
	"github.com/quirelab/quire/layout"
	"github.com/quirelab/quire/source"
)

const commitHistoryTitle = "Commit History"

var commitMetaColor = layout.Grey(0.4)

// commitRuns turns the chronological log into the appendix run queue: a
// heading, then one block per commit with the short hash in bold, the
// summary beside it and the author line beneath in grey.
func commitRuns(commits []source.CommitInfo, sizes config.SizeConfig) []layout.StyledRun {
	runs := []layout.StyledRun{
		{Text: commitHistoryTitle + "\n\n", Variant: layout.Bold, SizePt: sizes.Subheading},
	}
	for _, c := range commits {
		runs = append(runs,
			layout.StyledRun{Text: c.Hash + "  ", Variant: layout.Bold, SizePt: sizes.Body},
			layout.StyledRun{Text: c.Summary + "\n", SizePt: sizes.Body},
			layout.StyledRun{
				Text:   "          " + c.Date.Format("2006-01-02") + "  " + c.Author + "\n\n",
				Color:  commitMetaColor,
				SizePt: sizes.Small,
			},
		)
	}
	return runs
}
