package native

import (
	"encoding/binary"
	"fmt"
)

// Chunk types the engine understands.
const (
	chunkIHDR = "IHDR"
	chunkPLTE = "PLTE"
	chunkIDAT = "IDAT"
	chunkIEND = "IEND"
	chunkTRNS = "tRNS"
	chunkBKGD = "bKGD"
	chunkGAMA = "gAMA"
	chunkPHYS = "pHYs"
	chunkOFFS = "oFFs"
	chunkTIME = "tIME"
	chunkTEXT = "tEXt"
)

const maxChunkLength = 0x7fffffff

// readChunkHeader reads the length and type of the next chunk, and restarts the
// running CRC with the type bytes.
// Each chunk starts with a uint32 length (big endian), then 4 byte name,
// then data and finally the CRC32 of the chunk type and data.
func (e *engine) readChunkHeader() (uint32, string, error) {
	b, err := e.read(8)
	if err != nil {
		return 0, "", err
	}
	length := binary.BigEndian.Uint32(b[:4])
	if length > maxChunkLength {
		return 0, "", FormatError(fmt.Sprintf("bad chunk length: %d", length))
	}
	e.crc.Reset()
	e.crc.Write(b[4:8])
	return length, string(b[4:8]), nil
}

// readChunkData reads the whole chunk body and its trailing CRC.
func (e *engine) readChunkData(length uint32) ([]byte, error) {
	data, err := e.read(int(length))
	if err != nil {
		return nil, err
	}
	e.crc.Write(data)
	if err := e.verifyChecksum(); err != nil {
		return nil, err
	}
	return data, nil
}

func (e *engine) verifyChecksum() error {
	b, err := e.read(4)
	if err != nil {
		return err
	}
	if binary.BigEndian.Uint32(b) != e.crc.Sum32() {
		return FormatError("invalid checksum")
	}
	return nil
}

// isCritical reports whether a chunk type has the ancillary bit cleared.
func isCritical(typ string) bool {
	return typ[0]&0x20 == 0
}
