package tvs

// Band of Sight (BoS), C3. A bounded circular array of slots linked by
// explicit prev/next indices rather than owning pointers, per spec §9's
// "arena-plus-index" guidance and spec §3's sentinel convention
// (next == -1 at the forward end, prev == -2 at the backward end).
//
// Directly grounded on original_source/LinkedList.h and
// original_source/src/LinkedList.cpp (Clear/Add/AddFirst/AddLast/
// Remove_one/simpleinsert/removelinks), and on
// original_source/src/BOS.cpp's adjustToNextPoint/calculateNewPosition/
// insertPoint for the advance/insert schedule described in spec §4.2.

const (
	sentinelNext = -1 // forward end of the band
	sentinelPrev = -2 // backward end of the band
)

type bosSlot struct {
	id   int
	prev int
	next int
}

// PositionSource supplies the per-insertion placement code described in
// spec §4.2's "position-journal mode": during precompute, Record is
// called with every freshly computed code; during compute, Next
// returns the previously recorded codes in the same order.
type PositionSource interface {
	Record(pos int32)
	Next() int32
}

// BoS is the Band of Sight manager, C3.
type BoS struct {
	grid *Grid

	slots []bosSlot
	first, last, head, tail int
	count int

	bandSize           int
	halfBandSize       int
	computableBandSize int

	sectorOrderedID int
	pov             int
	remove          bool
	newPoint        int

	precompute bool
}

// NewBoS allocates a Band of Sight sized to the grid's (forced-odd)
// band width.
func NewBoS(g *Grid) *BoS {
	bw := g.BandWidth()
	maxLOS := int(g.MaxLineOfSight/g.Scale) + 1
	return &BoS{
		grid:               g,
		slots:              make([]bosSlot, bw),
		bandSize:           bw,
		halfBandSize:       (bw - 1) / 2,
		computableBandSize: maxLOS,
	}
}

// Setup resets the band for a new sector angle and seeds it with the
// first sector-ordered point, per spec §4.2.
func (b *BoS) Setup(precompute bool) {
	b.precompute = precompute
	for i := range b.slots {
		b.slots[i] = bosSlot{}
	}
	b.first, b.last, b.head, b.tail, b.count = 0, 0, 0, 0, 0
	b.sectorOrderedID = 0
	b.pov = 0

	first := b.grid.Sector.SectorOrdered[0]
	b.slots[0] = bosSlot{id: first, prev: sentinelPrev, next: sentinelNext}
	b.moveQueue(true, false)
}

// Advance readies the band for the k-th point of view and sets Pov for
// the horizon kernel. For k == 0 the band is the single point Setup
// seeded; for k > 0 it runs step k-1 of spec §4.2's starting/middle/
// ending insert/evict schedule, so the band then holds
// min(bw, 2k+1, 2(N-1-k)+1) points centred on the PoV.
func (b *BoS) Advance(k int, src PositionSource) {
	b.sectorOrderedID = k
	b.pov = k % b.bandSize
	if k == 0 {
		return
	}
	k--

	n := b.grid.Size()
	starting := k < b.halfBandSize
	endSection := n - b.halfBandSize - 1
	ending := k >= endSection

	doubled := 2 * k

	if starting {
		b.remove = false
		b.newPoint = b.grid.Sector.SectorOrdered[doubled+1]
		b.insertPoint(src)

		b.newPoint = b.grid.Sector.SectorOrdered[doubled+2]
		b.insertPoint(src)
		return
	}

	if !ending {
		b.remove = true
		leading := k + b.halfBandSize + 1
		b.newPoint = b.grid.Sector.SectorOrdered[leading]
		b.insertPoint(src)
		return
	}

	b.removeOne()
	b.removeOne()
}

// Pov returns the slot index of the current observer.
func (b *BoS) Pov() int { return b.pov }

// PovID returns the grid point id of the current observer.
func (b *BoS) PovID() int { return b.slots[b.pov].id }

// Walk calls fn for every neighbor from slot one step after/before pov
// (forward when forward is true, backward otherwise) out to the sentinel,
// in BoS order — the contract the horizon kernel (C5) sweeps over.
func (b *BoS) Walk(forward bool, fn func(id int)) {
	var cur int
	if forward {
		cur = b.slots[b.pov].next
	} else {
		cur = b.slots[b.pov].prev
	}
	for cur != sentinelNext && cur != sentinelPrev {
		fn(b.slots[cur].id)
		if forward {
			cur = b.slots[cur].next
		} else {
			cur = b.slots[cur].prev
		}
	}
}

// Contiguous reports the number of distinct points currently held,
// i.e. min(bw, 2k+1, 2(N-1-k)+1) per spec §8's BoS-contiguity
// invariant; exposed for the invariant checker (C10).
func (b *BoS) Contiguous() int { return b.count }

func (b *BoS) insertPoint(src PositionSource) {
	position := b.getNewPosition(src)
	if position > -1 {
		b.add(b.newPoint, position, b.remove)
		return
	}
	if position == sentinelNext {
		b.addLast(b.newPoint, b.remove)
	}
	if position == sentinelPrev {
		b.addFirst(b.newPoint, b.remove)
	}
}

func (b *BoS) getNewPosition(src PositionSource) int {
	if b.precompute {
		position := b.calculateNewPosition()
		if src != nil {
			src.Record(int32(position))
		}
		return position
	}
	return int(src.Next())
}

// calculateNewPosition performs the sight-order walk described in spec
// §4.2's insert contract: before First, after Last, or the predecessor
// slot found by a forward walk from First. Bounded by N steps per the
// §7 invariant-violation failure mode.
func (b *BoS) calculateNewPosition() int {
	so := b.grid.Sector.SightOrdered
	current := so[b.newPoint]
	firstIdx := so[b.slots[b.first].id]
	lastIdx := so[b.slots[b.last].id]

	if current < firstIdx {
		return sentinelPrev
	}
	if current > lastIdx {
		return sentinelNext
	}

	sweep := b.slots[b.first].next
	sanity := 0
	for current >= so[b.slots[sweep].id] {
		sweep = b.slots[sweep].next
		sanity++
		if sanity > b.grid.Size() {
			panic(ErrBosInsertNotFound)
		}
	}
	return b.slots[sweep].prev
}

func (b *BoS) moveQueue(moveHead, moveTail bool) {
	if moveHead {
		b.head = (b.head + 1) % b.bandSize
	}
	if moveTail {
		b.tail = (b.tail + 1) % b.bandSize
	}
	if moveHead && !moveTail {
		b.count++
	}
	if !moveHead && moveTail {
		b.count--
	}
}

func (b *BoS) simpleInsert(pos int) {
	b.slots[b.head].prev = pos
	b.slots[b.head].next = b.slots[pos].next
	b.slots[pos].next = b.head
	b.slots[b.slots[b.head].next].prev = b.head
}

func (b *BoS) removeLinks(prv, nxt int) {
	if prv != sentinelPrev {
		b.slots[prv].next = nxt
	} else {
		b.first = nxt
	}
	if nxt != sentinelNext {
		b.slots[nxt].prev = prv
	} else {
		b.last = prv
	}
}

func (b *BoS) add(id, pos int, remove bool) {
	tn, tp := -3, -3
	replace := false
	if remove {
		tn = b.slots[b.tail].next
		tp = b.slots[b.tail].prev
		replace = (b.tail == pos) || (b.slots[b.tail].prev == pos)
	}

	b.slots[b.head].id = id

	if !remove {
		b.simpleInsert(pos)
		b.moveQueue(true, false)
		return
	}

	if replace {
		b.moveQueue(true, true)
		return
	}
	b.simpleInsert(pos)
	b.removeLinks(tp, tn)
	b.moveQueue(true, true)
}

func (b *BoS) addFirst(id int, remove bool) {
	tp := b.slots[b.tail].prev
	tn := b.slots[b.tail].next
	removingFirst := (tp == sentinelPrev) && remove
	if removingFirst {
		tp = b.head
	}

	b.slots[b.head].id = id
	b.slots[b.head].prev = sentinelPrev
	if !removingFirst {
		b.slots[b.head].next = b.first
		b.slots[b.first].prev = b.head
	}
	if remove {
		b.removeLinks(tp, tn)
	}
	b.first = b.head
	b.moveQueue(true, remove)
}

func (b *BoS) addLast(id int, remove bool) {
	tp := b.slots[b.tail].prev
	tn := b.slots[b.tail].next
	removingLast := (tn == sentinelNext) && remove
	if removingLast {
		tn = b.head
	}

	b.slots[b.head].id = id
	b.slots[b.head].next = sentinelNext
	if !removingLast {
		b.slots[b.head].prev = b.last
		b.slots[b.last].next = b.head
	}
	if remove {
		b.removeLinks(tp, tn)
	}
	b.last = b.head
	b.moveQueue(true, remove)
}

func (b *BoS) removeOne() {
	tp := b.slots[b.tail].prev
	tn := b.slots[b.tail].next
	b.removeLinks(tp, tn)
	b.moveQueue(false, true)
}
