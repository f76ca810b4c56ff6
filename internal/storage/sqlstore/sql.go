package sqlstore

// Statements are written in the subset shared by MySQL and SQLite: `?`
// placeholders, no RETURNING, no upserts.

const hotelColumns = `slug, images, title, description, guest_count, bedroom_count, bathroom_count,
  amenities, host_information, address, latitude, longitude`

const listHotelsSQL = `SELECT ` + hotelColumns + ` FROM hotel_details ORDER BY slug`

const getHotelSQL = `SELECT ` + hotelColumns + ` FROM hotel_details WHERE slug = ?`

const hotelImagesSQL = `SELECT images FROM hotel_details WHERE slug = ?`

const insertHotelSQL = `
INSERT INTO hotel_details
  (` + hotelColumns + `)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const updateHotelSQL = `
UPDATE hotel_details SET
  images           = ?,
  title            = ?,
  description      = ?,
  guest_count      = ?,
  bedroom_count    = ?,
  bathroom_count   = ?,
  amenities        = ?,
  host_information = ?,
  address          = ?,
  latitude         = ?,
  longitude        = ?
WHERE slug = ?
`

const deleteHotelSQL = `DELETE FROM hotel_details WHERE slug = ?`

// -----------------------------------------------------------------------------
// ROOMS
// -----------------------------------------------------------------------------

const roomColumns = `hotel_slug, room_slug, room_image, room_title, bedroom_count`

const listRoomsSQL = `SELECT ` + roomColumns + ` FROM room_information WHERE hotel_slug = ? ORDER BY room_slug`

const getRoomSQL = `SELECT ` + roomColumns + ` FROM room_information WHERE hotel_slug = ? AND room_slug = ?`

const roomImagesSQL = `SELECT room_image FROM room_information WHERE hotel_slug = ? AND room_slug = ?`

const insertRoomSQL = `
INSERT INTO room_information
  (` + roomColumns + `)
VALUES
  (?, ?, ?, ?, ?)
`

const updateRoomSQL = `
UPDATE room_information SET
  room_image    = ?,
  room_title    = ?,
  bedroom_count = ?
WHERE hotel_slug = ? AND room_slug = ?
`

const deleteRoomSQL = `DELETE FROM room_information WHERE hotel_slug = ? AND room_slug = ?`

// -----------------------------------------------------------------------------
// IMAGE INDEX
// -----------------------------------------------------------------------------

const allHotelImagesSQL = `SELECT images FROM hotel_details`

const allRoomImagesSQL = `SELECT room_image FROM room_information`
