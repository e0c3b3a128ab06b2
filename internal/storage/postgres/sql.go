package postgres

import "polimanage/internal/storage"

const selectPistasSQL = `SELECT ` + storage.PistaColumns + ` FROM pistas ORDER BY id ASC`

const selectPistaByIDSQL = `SELECT ` + storage.PistaColumns + ` FROM pistas WHERE id = $1`

const selectActiveClubsSQL = `
SELECT ` + storage.ClubColumns + `
FROM clubs
WHERE is_active = true
ORDER BY created_at DESC, id DESC
`

const selectClubByIDSQL = `SELECT ` + storage.ClubColumns + ` FROM clubs WHERE id = $1`

const selectClubBySlugSQL = `SELECT ` + storage.ClubColumns + ` FROM clubs WHERE slug = $1`
