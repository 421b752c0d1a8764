package game

import (
	"gorm.io/gorm"
)

// ArtistCount is one bar of the "most named artists" chart.
type ArtistCount struct {
	Artist string `json:"artist"`
	Count  int    `json:"count"`
}

// ScoreBucket is one bar of the score distribution over completed games.
type ScoreBucket struct {
	Score int `json:"score"`
	Count int `json:"count"`
}

// DayCount is one point of the completions-per-day series.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// StatusCount is a labeled slice of a breakdown pie.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// ChartData is everything the admin stats page renders.
type ChartData struct {
	TopArtists         []ArtistCount `json:"topArtists"`
	ScoreDistribution  []ScoreBucket `json:"scoreDistribution"`
	CompletionByDay    []DayCount    `json:"completionByDay"`
	RegistrationStatus []StatusCount `json:"registrationStatus"`
	GameProgress       []StatusCount `json:"gameProgress"`
}

// Charts aggregates the admin dashboard breakdowns. Pure read side: every
// number is recomputed from the tables on each call.
func Charts(db *gorm.DB) (*ChartData, error) {
	data := &ChartData{
		TopArtists:         []ArtistCount{},
		ScoreDistribution:  []ScoreBucket{},
		CompletionByDay:    []DayCount{},
		RegistrationStatus: []StatusCount{},
		GameProgress:       []StatusCount{},
	}

	err := db.Raw(`
		SELECT artist, COUNT(*) AS count FROM (
			SELECT artist_1 AS artist FROM participants WHERE artist_1 <> ''
			UNION ALL
			SELECT artist_2 AS artist FROM participants WHERE artist_2 <> ''
			UNION ALL
			SELECT artist_3 AS artist FROM participants WHERE artist_3 <> ''
		) all_artists
		GROUP BY artist
		ORDER BY count DESC
		LIMIT 10`).Scan(&data.TopArtists).Error
	if err != nil {
		return nil, err
	}

	err = db.Raw(`
		SELECT (
			SELECT COUNT(*) FROM guesses g
			WHERE g.session_id = gs.id
			AND g.card_participant_id = g.guessed_participant_id
		) AS score, COUNT(*) AS count
		FROM game_sessions gs
		WHERE gs.is_completed = true
		GROUP BY score
		ORDER BY score ASC`).Scan(&data.ScoreDistribution).Error
	if err != nil {
		return nil, err
	}

	err = db.Raw(`
		SELECT DATE(completed_at) AS date, COUNT(*) AS count
		FROM game_sessions
		WHERE is_completed = true AND completed_at IS NOT NULL
		GROUP BY DATE(completed_at)
		ORDER BY date ASC`).Scan(&data.CompletionByDay).Error
	if err != nil {
		return nil, err
	}

	err = db.Raw(`
		SELECT CASE WHEN photo_url IS NOT NULL THEN 'registered' ELSE 'missing photo' END AS status,
			COUNT(*) AS count
		FROM participants
		GROUP BY CASE WHEN photo_url IS NOT NULL THEN 'registered' ELSE 'missing photo' END`).
		Scan(&data.RegistrationStatus).Error
	if err != nil {
		return nil, err
	}

	err = db.Raw(`
		SELECT status, COUNT(*) AS count FROM (
			SELECT CASE
				WHEN gs.is_completed = true THEN 'completed'
				WHEN gs.id IS NOT NULL THEN 'in progress'
				ELSE 'not started'
			END AS status
			FROM participants p
			LEFT JOIN game_sessions gs ON gs.player_id = p.id
		) progress
		GROUP BY status`).Scan(&data.GameProgress).Error
	if err != nil {
		return nil, err
	}

	return data, nil
}
