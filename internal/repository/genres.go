// Package repository contains data access logic separated from HTTP handlers.
// This file implements the genre encoding used by the venues and artists
// tables.  Genres are stored as a single comma-joined text column, a
// transitional encoding inherited from the original schema rather than a
// normalized set.  EncodeGenres and DecodeGenres must stay exact inverses
// for labels free of the reserved punctuation, or edits would corrupt the
// stored list on every round trip.
package repository

import "strings"

// EncodeGenres flattens a list of genre labels into the stored column form.
func EncodeGenres(genres []string) string {
    return strings.Join(genres, ",")
}

// DecodeGenres parses the stored genre column back into individual labels.
// Rows written by the legacy application can carry array punctuation
// ("{Jazz,\"Rock n Roll\"}"), so structural characters are stripped before
// splitting.  Empty fragments are dropped and surrounding whitespace is
// trimmed; order is preserved.
func DecodeGenres(raw string) []string {
    cleaned := strings.NewReplacer("{", "", "}", "", `"`, "").Replace(raw)
    parts := strings.Split(cleaned, ",")
    out := make([]string, 0, len(parts))
    for _, p := range parts {
        p = strings.TrimSpace(p)
        if p == "" {
            continue
        }
        out = append(out, p)
    }
    return out
}
