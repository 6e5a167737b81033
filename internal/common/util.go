package common

// WipeByteArray zeroes the buffer in place. Used to scrub password bytes
// once they have been obfuscated for storage.
func WipeByteArray(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}
