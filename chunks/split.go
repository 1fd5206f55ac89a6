package chunks

// Count is the number of chunks in a file of fileSize bytes: ceil(fileSize / chunkSize).
// chunkSize must be positive.
func Count(fileSize int64, chunkSize int) int {
	if fileSize <= 0 {
		return 0
	}

	cs := int64(chunkSize)
	return int((fileSize + cs - 1) / cs)
}

// Split p into chunks of chunkSize bytes. Every chunk but the last is exactly chunkSize long,
// the last is between 1 and chunkSize bytes. The chunks alias p.
// chunkSize must be positive.
func Split(p []byte, chunkSize int) [][]byte {
	result := make([][]byte, 0, Count(int64(len(p)), chunkSize))

	for start := 0; start < len(p); start += chunkSize {
		end := start + chunkSize

		if end > len(p) {
			end = len(p)
		}

		result = append(result, p[start:end:end])
	}

	return result
}

// LastChunkSize is the length of the final chunk of a file of fileSize bytes,
// zero for an empty file
func LastChunkSize(fileSize int64, chunkSize int) int {
	n := Count(fileSize, chunkSize)

	if n == 0 {
		return 0
	}

	return int(fileSize - int64(n-1)*int64(chunkSize))
}
