package respond

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeError(t *testing.T) {
	tests := []struct {
		name  string
		input error
		want  string
	}{
		{
			name:  "api key in upstream URL",
			input: errors.New(`Get "https://api.themoviedb.org/3/movie/597?api_key=abc123": dial tcp: connection refused`),
			want:  `Get "https://api.themoviedb.org/3/movie/597?api_key=****": dial tcp: connection refused`,
		},
		{
			name:  "api key followed by more params",
			input: errors.New("GET /3/movie/1?api_key=secret&language=en failed"),
			want:  "GET /3/movie/1?api_key=****&language=en failed",
		},
		{
			name:  "url dsn",
			input: errors.New("dial tcp: postgres://recommender:hunter2@db:5432/movies"),
			want:  "dial tcp: postgres://recommender:****@db:5432/movies",
		},
		{
			name:  "key value dsn",
			input: errors.New("cannot parse `host=db user=recommender password=hunter2 dbname=movies`"),
			want:  "cannot parse `host=db user=recommender password=**** dbname=movies`",
		},
		{
			name:  "catalog error untouched",
			input: errors.New("movie 'Avatar' not found in the database"),
			want:  "movie 'Avatar' not found in the database",
		},
		{
			name:  "nil error",
			input: nil,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeError(tt.input))
		})
	}
}
