package tairclient

import "math/rand"

// chooseRandom picks the address a replica dialer connects to. Each new
// connection picks independently, spreading a pool across replicas.
func chooseRandom(addrs []string) string {
	if len(addrs) == 0 {
		return ""
	}

	return addrs[rand.Intn(len(addrs))]
}
