package source

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// CommitInfo is one history entry for the commit appendix.
type CommitInfo struct {
	Hash    string // short hash
	Author  string
	Date    time.Time
	Summary string
}

// Authors returns the de-duplicated, sorted author names over the whole
// history of the repository at repoPath.
func Authors(repoPath string) ([]string, error) {
	commits, err := Commits(repoPath)
	if err != nil {
		return nil, err
	}
	seen := map[string]struct{}{}
	var authors []string
	for _, c := range commits {
		if _, ok := seen[c.Author]; ok {
			continue
		}
		seen[c.Author] = struct{}{}
		authors = append(authors, c.Author)
	}
	sort.Strings(authors)
	return authors, nil
}

// Commits returns the repository history in chronological order, oldest
// first.
func Commits(repoPath string) ([]CommitInfo, error) {
	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return nil, fmt.Errorf("open repository %s: %w", repoPath, err)
	}
	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("resolve HEAD: %w", err)
	}
	iter, err := repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	defer iter.Close()

	var commits []CommitInfo
	err = iter.ForEach(func(c *object.Commit) error {
		summary := c.Message
		if i := strings.IndexByte(summary, '\n'); i >= 0 {
			summary = summary[:i]
		}
		commits = append(commits, CommitInfo{
			Hash:    c.Hash.String()[:8],
			Author:  c.Author.Name,
			Date:    c.Author.When,
			Summary: strings.TrimSpace(summary),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk log: %w", err)
	}

	// the log iterates newest first
	for i, j := 0, len(commits)-1; i < j; i, j = i+1, j-1 {
		commits[i], commits[j] = commits[j], commits[i]
	}
	return commits, nil
}
