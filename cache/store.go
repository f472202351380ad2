package cache

// Layout names the two on-disk sector-cache layouts spec §6 admits.
type Layout string

const (
	LayoutJournal   Layout = "journal"
	LayoutDeltaBand Layout = "deltaband"
)

// PositionSource is the placement-code contract the BoS package
// consumes: Record during precompute, Next during compute. JournalStore
// satisfies it structurally. DeltaBandStore does not: it captures and
// reconstructs whole band snapshots per PoV instead. The sector driver
// (C6) takes only a PositionSource and does not read Layout, so runs
// driven by RunSector always use the position-journal layout;
// DeltaBandStore is a standalone codec with no caller in the driver.
type PositionSource interface {
	Record(pos int32)
	Next() int32
}
