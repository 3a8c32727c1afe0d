package pgstore

const (
	memberColumns = `
		m.member_id, COALESCE(m.music_id, ''), COALESCE(m.display_name, ''), m.theme_id,
		t.id, t.name, t.sidebar_type, t.dark_mode, t.color
	`

	queryGetByUserID = `
		SELECT ` + memberColumns + `
		FROM members m
		LEFT JOIN themes t ON t.id = m.theme_id
		WHERE m.member_id = $1
		LIMIT 1
	`

	queryGetByMusicID = `
		SELECT ` + memberColumns + `
		FROM members m
		LEFT JOIN themes t ON t.id = m.theme_id
		WHERE m.music_id = $1
		LIMIT 1
	`

	queryCreate = `
		WITH inserted AS (
			INSERT INTO members (member_id, music_id, display_name, theme_id)
			VALUES ($1, $2, NULLIF($3, ''), $4)
			RETURNING member_id, music_id, display_name, theme_id
		)
		SELECT ` + memberColumns + `
		FROM inserted m
		LEFT JOIN themes t ON t.id = m.theme_id
	`
)
