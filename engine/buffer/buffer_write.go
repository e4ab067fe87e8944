package buffer

// Write describes one staged upload: the bytes packed for a buffer, waiting to be committed.
type Write struct {
	Buffer GPUBuffer
	Data   []byte
}

// Commit compiles or updates w.Buffer on device with the staged bytes.
//
// Parameters:
//   - device: the device to upload to
//
// Returns:
//   - error: any Compile or Update error
func (w Write) Commit(device Device) error {
	return w.Buffer.commit(device, w.Data)
}
