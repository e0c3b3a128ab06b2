package mysql

import "polimanage/internal/storage"

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

// Inactive pistas are listed too; callers decide what to show.
const selectPistasSQL = `SELECT ` + storage.PistaColumns + ` FROM pistas ORDER BY id ASC`

const selectPistaByIDSQL = `SELECT ` + storage.PistaColumns + ` FROM pistas WHERE id = ?`

// id DESC keeps clubs created in the same instant in a stable order.
const selectActiveClubsSQL = `
SELECT ` + storage.ClubColumns + `
FROM clubs
WHERE is_active = TRUE
ORDER BY created_at DESC, id DESC
`

// No is_active filter: a deactivated club is still addressable by id or slug.
const selectClubByIDSQL = `SELECT ` + storage.ClubColumns + ` FROM clubs WHERE id = ?`

const selectClubBySlugSQL = `SELECT ` + storage.ClubColumns + ` FROM clubs WHERE slug = ?`
