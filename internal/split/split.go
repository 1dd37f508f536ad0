// Package split assigns generated output files to the train or test bucket.
package split

import (
	"github.com/cespare/xxhash/v2"
)

// Bucket is a train/test partition.
type Bucket string

const (
	Train Bucket = "train"
	Test  Bucket = "test"
)

// DefaultTrainRatio is the fraction of outputs routed to the train bucket
// when no ratio is configured.
const DefaultTrainRatio = 0.8

// Assigner maps an output file name to a bucket. It is stateless: the same
// name always lands in the same bucket, across processes, runs and platforms.
//
// The algorithm is a compatibility contract and must not change between
// versions, since consumers may re-derive the split of an existing corpus
// without replaying generation:
//
//  1. hash the name with XXH64 (github.com/cespare/xxhash/v2, the reference
//     64-bit xxHash)
//  2. reinterpret the low 32 bits as a signed int32 and take its absolute
//     value
//  3. reduce modulo 10 and divide by 10, yielding a tenth in [0, 1)
//  4. assign Train iff the tenth is strictly less than TrainRatio
//
// Because step 3 quantizes to tenths, ratios are effectively rounded up to
// the next multiple of 0.1; the default 0.8 routes digits 0..7 to train.
type Assigner struct {
	// TrainRatio must be in (0,1). Zero value is not usable; construct
	// with New.
	TrainRatio float64
}

// New returns an Assigner with the given train ratio, or the default ratio
// if the argument is outside (0,1).
func New(trainRatio float64) Assigner {
	if trainRatio <= 0 || trainRatio >= 1 {
		trainRatio = DefaultTrainRatio
	}
	return Assigner{TrainRatio: trainRatio}
}

// Assign returns the bucket for an output file name. The name should be the
// bare file name (e.g. "license_01_3.jpg"), not a path: the bucket of a file
// must not depend on where the corpus root lives.
func (a Assigner) Assign(name string) Bucket {
	v := int64(int32(uint32(xxhash.Sum64String(name))))
	if v < 0 {
		v = -v
	}
	if float64(v%10)/10 < a.TrainRatio {
		return Train
	}
	return Test
}
