package turneval

import (
	"regexp"
	"strconv"
	"strings"

	"goa.design/agentbench/dialog"
)

// Resolver names, recorded on each ResolvedKey.
const (
	ResolverProfileField    = "profile_field"
	ResolverConstraintsGT   = "constraints_gt"
	ResolverPreferencesGT   = "preferences_gt"
	ResolverHistoryUserTurn = "history_user_turn"
	ResolverHistoryAbsTurn  = "history_abs_turn"
	ResolverUnknown         = "unknown"
)

// Recall-bucket key-hit sources.
const (
	SourceShortTerm = "short_term"
	SourceLongTerm  = "long_term"
	SourceProfile   = "profile"
)

var constraintsPrefIndexRe = regexp.MustCompile(`^profile_gt\.(constraints_gt|preferences_gt)\[(\d+)\]$`)
var historyTurnIndexRe = regexp.MustCompile(`^history_turn_index:(\d+)$`)

// ResolvedKey is one resolved (or unresolvable) required-memory key.
type ResolvedKey struct {
	Key        string
	Resolvable bool
	TargetText string
	Resolver   string
}

// ResolveKey implements the M1 required-memory key resolution table in
// §4.8. pairs is the dialog's full aligned turn-pair sequence (needed for
// the history_turn_index: resolver, which indexes into it) and rawTurns
// are the dialog's raw turns (needed for the history_abs_turn fallback).
func ResolveKey(key string, gt dialog.ProfileGT, pairs []dialog.TurnPair, rawTurns []dialog.Turn) ResolvedKey {
	switch key {
	case "profile_gt.risk_level_gt":
		return ResolvedKey{Key: key, Resolvable: gt.RiskLevelGT != "", TargetText: gt.RiskLevelGT, Resolver: ResolverProfileField}
	case "profile_gt.horizon_gt":
		return ResolvedKey{Key: key, Resolvable: gt.HorizonGT != "", TargetText: gt.HorizonGT, Resolver: ResolverProfileField}
	case "profile_gt.liquidity_need_gt":
		return ResolvedKey{Key: key, Resolvable: gt.LiquidityNeedGT != "", TargetText: gt.LiquidityNeedGT, Resolver: ResolverProfileField}
	}

	if m := constraintsPrefIndexRe.FindStringSubmatch(key); m != nil {
		field, idxStr := m[1], m[2]
		idx, err := strconv.Atoi(idxStr)
		if err != nil {
			return ResolvedKey{Key: key, Resolver: ResolverUnknown}
		}
		var seq []string
		resolver := ResolverConstraintsGT
		if field == "constraints_gt" {
			seq = gt.ConstraintsGT
		} else {
			seq = gt.PreferencesGT
			resolver = ResolverPreferencesGT
		}
		if idx < 0 || idx >= len(seq) {
			return ResolvedKey{Key: key, Resolver: resolver}
		}
		return ResolvedKey{Key: key, Resolvable: true, TargetText: seq[idx], Resolver: resolver}
	}

	if m := historyTurnIndexRe.FindStringSubmatch(key); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return ResolvedKey{Key: key, Resolver: ResolverUnknown}
		}
		// 1-based index into the aligned user-turn sequence.
		if n >= 1 && n <= len(pairs) {
			return ResolvedKey{Key: key, Resolvable: true, TargetText: pairs[n-1].UserText, Resolver: ResolverHistoryUserTurn}
		}
		// Fallback: 1-based absolute index into the raw turn list when the
		// aligned-pair index is out of range.
		if n >= 1 && n <= len(rawTurns) {
			if text := rawTurns[n-1].Text; text != "" {
				return ResolvedKey{Key: key, Resolvable: true, TargetText: text, Resolver: ResolverHistoryAbsTurn}
			}
		}
		return ResolvedKey{Key: key, Resolver: ResolverHistoryAbsTurn}
	}

	return ResolvedKey{Key: key, Resolver: ResolverUnknown}
}

// KeyHit searches targetText as a substring within the three recall-derived
// concatenations and returns which sources matched.
func KeyHit(targetText, shortTermContext, longTermJoined, profileContext string) []string {
	if targetText == "" {
		return nil
	}
	var sources []string
	if strings.Contains(shortTermContext, targetText) {
		sources = append(sources, SourceShortTerm)
	}
	if strings.Contains(longTermJoined, targetText) {
		sources = append(sources, SourceLongTerm)
	}
	if strings.Contains(profileContext, targetText) {
		sources = append(sources, SourceProfile)
	}
	return sources
}
