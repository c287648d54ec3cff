// Moodscape - Mood-Aware Music Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodscape

package recommend

import (
	"math/rand"
	"sync"

	"github.com/tomtom215/moodscape/internal/catalog"
	"github.com/tomtom215/moodscape/internal/mood"
)

// defaultPlaylistSize is the song count of the fallback playlist.
const defaultPlaylistSize = 5

// playlistNames maps a primary mood to its playlist title.
var playlistNames = map[mood.Mood]string{
	mood.Tired:     "Late Night Chill",
	mood.Stressed:  "Stress Relief",
	mood.Energetic: "Energy Boost",
	mood.Relaxed:   "Relaxation Station",
	mood.Focused:   "Deep Focus",
	mood.Anxious:   "Calm & Collected",
}

// assembler builds playlists from ranked categories. The shuffle source is
// seeded once so identical request sequences produce identical playlists.
type assembler struct {
	catalog *catalog.Catalog

	rng   *rand.Rand
	rngMu sync.Mutex
}

func newAssembler(cat *catalog.Catalog, seed int64) *assembler {
	if seed == 0 {
		seed = DefaultSeed
	}
	return &assembler{
		catalog: cat,
		rng:     rand.New(rand.NewSource(seed)), //nolint:gosec // math/rand is fine for playlist shuffling
	}
}

// assemble walks the ranked categories in order, taking songs until the
// target duration is met. The song that crosses the target is kept, so the
// playlist can overshoot by at most one song. With no categories the
// fallback playlist is returned.
func (a *assembler) assemble(ranked []RankedCategory, primary mood.Mood, minutes int) Playlist {
	if len(ranked) == 0 {
		return a.defaultPlaylist(primary)
	}
	if minutes <= 0 {
		minutes = DefaultPlaylistMinutes
	}

	target := minutes * 60
	var songs []catalog.Song
	total := 0

	for _, rc := range ranked {
		if total >= target {
			break
		}
		for _, song := range a.catalog.Songs(rc.Key) {
			if total >= target {
				break
			}
			songs = append(songs, song)
			total += song.DurationSeconds
		}
	}

	a.shuffle(songs)

	return Playlist{
		Name:                 playlistName(primary),
		Mood:                 string(primary),
		Songs:                songs,
		TotalDurationSeconds: total,
	}
}

// defaultPlaylist returns the first songs of the fallback category.
func (a *assembler) defaultPlaylist(primary mood.Mood) Playlist {
	pool := a.catalog.Songs(a.catalog.FallbackKey())
	n := defaultPlaylistSize
	if n > len(pool) {
		n = len(pool)
	}

	songs := make([]catalog.Song, n)
	copy(songs, pool[:n])

	total := 0
	for _, song := range songs {
		total += song.DurationSeconds
	}

	return Playlist{
		Name:                 "Default Playlist",
		Mood:                 string(primary),
		Songs:                songs,
		TotalDurationSeconds: total,
	}
}

func (a *assembler) shuffle(songs []catalog.Song) {
	a.rngMu.Lock()
	defer a.rngMu.Unlock()
	a.rng.Shuffle(len(songs), func(i, j int) {
		songs[i], songs[j] = songs[j], songs[i]
	})
}

func playlistName(primary mood.Mood) string {
	if name, ok := playlistNames[primary]; ok {
		return name
	}
	return "Mood Playlist"
}
