package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/mpetrov/teamdrop/internal/storage"
)

// ReportEntry summarizes one team folder.
type ReportEntry struct {
	Team         string   `json:"team"`
	FileCount    int      `json:"file_count"`
	LoginIDs     []string `json:"login_ids"`
	LastModified *string  `json:"last_modified"`
}

// BuildReport lists every team folder under the root and derives one
// entry per folder, ordered by the numeric component of the team name
// ("Team 3" before "Team 12"). A team name without a parseable number
// fails the whole report.
func (s *SubmissionService) BuildReport(ctx context.Context) ([]ReportEntry, error) {
	folders, err := s.provider.ListFolders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list team folders: %v", err)
	}

	entries := make([]ReportEntry, 0, len(folders))
	for _, folder := range folders {
		children, err := s.provider.ListChildren(ctx, folder.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list files for team %s: %v", folder.Name, err)
		}

		entry := ReportEntry{
			Team:      folder.Name,
			FileCount: len(children),
			LoginIDs:  make([]string, 0, len(children)),
		}
		for _, child := range children {
			entry.LoginIDs = append(entry.LoginIDs, LoginIDFromName(child.Name))
		}
		sort.Strings(entry.LoginIDs)
		if last := lastModified(children); last != "" {
			entry.LastModified = &last
		}

		entries = append(entries, entry)
	}

	if err := sortByTeamNumber(entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// lastModified returns the maximum modifiedTime among children, or ""
// for an empty folder. The timestamps are RFC 3339 UTC, so the plain
// string maximum is the chronological maximum.
func lastModified(children []storage.FileMeta) string {
	var latest string
	for _, child := range children {
		if child.ModifiedTime > latest {
			latest = child.ModifiedTime
		}
	}
	return latest
}

func sortByTeamNumber(entries []ReportEntry) error {
	keys := make(map[string]int, len(entries))
	for _, entry := range entries {
		number, err := teamNumber(entry.Team)
		if err != nil {
			return err
		}
		keys[entry.Team] = number
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return keys[entries[i].Team] < keys[entries[j].Team]
	})
	return nil
}

// teamNumber extracts the sort key from names like "Team 7": the second
// space-delimited token parsed as an integer.
func teamNumber(team string) (int, error) {
	parts := strings.Split(team, " ")
	if len(parts) < 2 {
		return 0, fmt.Errorf("team name %q has no numeric component", team)
	}
	number, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("team name %q has no numeric component", team)
	}
	return number, nil
}
