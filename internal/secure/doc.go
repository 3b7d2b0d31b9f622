// Package secure keeps credentials encrypted in memory between the moment
// they are read from the session store and the moment they are written into
// a request header.
//
// Values are sealed in a memguard enclave (XSalsa20Poly1305, key held in
// mlocked memory) and only decrypted for the duration of a callback:
//
//	tok := secure.NewToken([]byte(session.Token))
//	defer tok.Destroy()
//
//	err := tok.Use(func(plain []byte) error {
//	    req.Header.Set("Authorization-Password", base64.StdEncoding.EncodeToString(plain))
//	    return nil
//	})
//
// Call memguard.Purge at process exit to wipe the enclave keys.
package secure
