package bridge

import "github.com/denisbrodbeck/machineid"

// MachineID derives a stable bridge identity from the host machine,
// hashed app-specifically so the raw machine ID never leaves the host.
func MachineID() string {
	id, err := machineid.ProtectedID("armlink")
	if err != nil {
		panic(err)
	}
	if len(id) > 12 {
		id = id[:12]
	}
	return id
}
