// Package hashing provides MD5 checksum calculation utilities.
//
// ChecksumReaderProxy hashes a listing while it is read from disk.
// LineChecksum hashes the lines of a chain, so two chain dumps can be
// compared by checksum alone.
//
//	proxy := hashing.NewMD5ReaderProxy(file)
//	content, _ := io.ReadAll(proxy)
//	fmt.Printf("Read %d bytes, MD5: %s\n", proxy.Size(), proxy.GetChecksum())
package hashing
