package container

import "encoding/binary"

// ReadPooled reads the length-prefixed record at base+8*o: a u16 length
// followed by that many bytes (spec.md §3 String pool). The returned slice
// aliases data and must not be retained past data's lifetime if data is a
// memory-mapped region that may be unmapped.
func ReadPooled(data []byte, base int, o uint16) ([]byte, error) {
	addr := pooledAddr(base, o)
	if err := boundsCheck(data, addr, 2, "pool-length"); err != nil {
		return nil, err
	}
	length := int(binary.LittleEndian.Uint16(data[addr : addr+2]))
	start := addr + 2
	if err := boundsCheck(data, start, length, "pool-payload"); err != nil {
		return nil, truncated("pool-payload", addr)
	}
	return data[start : start+length], nil
}

// ReadPooledCString reads a length-prefixed record whose payload is a
// NUL-terminated C string (the trailing NUL is counted in length, per
// spec.md §3, and is stripped here).
func ReadPooledCString(data []byte, base int, o uint16) (string, error) {
	raw, err := ReadPooled(data, base, o)
	if err != nil {
		return "", err
	}
	if len(raw) == 0 {
		return "", nil
	}
	return string(raw[:len(raw)-1]), nil
}
