package params

const (
	// BPSWExtraBaseBits is the magnitude, in bits, beyond which the
	// Baillie-PSW combination adds one random Miller-Rabin base.
	BPSWExtraBaseBits = 128

	// MinPrimeBits is the smallest bit length the prime generator accepts.
	MinPrimeBits = 2
	// MinSafePrimeBits is the smallest bit length the safe-prime generator
	// accepts; below 3 bits no safe prime exists.
	MinSafePrimeBits = 3

	// DefaultPrimeBits is the bit length the CLI generates when none is given.
	DefaultPrimeBits = 1024
)
