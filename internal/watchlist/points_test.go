package watchlist

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vmunix/reelgo/internal/movie"
)

func TestPoints(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		rec  movie.Record
		want int
	}{
		{"floor applies", movie.Record{Year: "1990", Rating: 3.1}, 50},
		{"unrated", movie.Record{Year: "N/A"}, 50},
		{"rating scaled", movie.Record{Year: "2001", Rating: 6.4}, 64},
		{"rounded", movie.Record{Year: "2001", Rating: 7.25}, 73},
		{"acclaimed", movie.Record{Year: "1994", Rating: 8.9}, 89 + 25},
		{"exactly eight", movie.Record{Year: "1994", Rating: 8.0}, 80 + 25},
		{"recent", movie.Record{Year: "2025", Rating: 6.0}, 60 + 25},
		{"this year", movie.Record{Year: "2026", Rating: 2.0}, 50 + 25},
		{"two years ago", movie.Record{Year: "2024", Rating: 6.0}, 60},
		{"recent series", movie.Record{Year: "2025–", Rating: 9.0}, 90 + 25 + 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Points(tt.rec, now))
		})
	}
}
