package tvs

import (
	"errors"
)

// Configuration errors, fatal at startup.
var ErrNonSquareGrid = errors.New("DEM grid must be square")
var ErrSectorDivisor = errors.New("total_sectors must divide 180 evenly")
var ErrMissingDir = errors.New("required output directory does not exist")
var ErrBadConfig = errors.New("invalid configuration")
var ErrTowerNotComputable = errors.New("tower point is not a computable point")

// I/O errors, fatal, partial sector files must be discarded.
var ErrOpenInput = errors.New("cannot open elevation input file")
var ErrOpenCache = errors.New("cannot open sector cache file")
var ErrOpenOutput = errors.New("cannot open output file")
var ErrShortHeader = errors.New("header is shorter than 256 bytes")
var ErrShortBody = errors.New("grid body is truncated")

// Invariant violations, fatal, indicate ordering corruption.
var ErrBosInsertNotFound = errors.New("BoS insert could not find a position within N steps")
var ErrBosOverflow = errors.New("BoS advance exceeded N iterations")
var ErrOrderingNotBijective = errors.New("sector/sight ordering is not a permutation of [0, N)")
var ErrRingUnpaired = errors.New("ring sector opening without a matching close")
