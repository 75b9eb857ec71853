// Copyright © 2023 Antalpha
//
// This file is part of Antalpha. The full Antalpha copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package save

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"runtime"

	"github.com/fxamacker/cbor/v2"
	log "github.com/sirupsen/logrus"

	"PrimalityEngine/pkg/BigInt"
)

const (
	safePrimeFixtureDirFormat  = "%s/../../test/safe_prime_fixture"
	safePrimeFixtureFileFormat = "safe_prime_%d.data"
)

// SafePrimeFixture is a previously generated safe prime, stored so that
// expensive generation does not have to run on every test invocation.
// P is the safe prime and Q = (P - 1) / 2.
type SafePrimeFixture struct {
	Bits int
	P    *BigInt.NatCode
	Q    *BigInt.NatCode
}

func makeSafePrimeFixturePath(bits int) string {
	_, callerFileName, _, _ := runtime.Caller(0)
	srcDirName := filepath.Dir(callerFileName)
	fixtureDirName := fmt.Sprintf(safePrimeFixtureDirFormat, srcDirName)
	return filepath.Clean(fmt.Sprintf("%s/"+safePrimeFixtureFileFormat, fixtureDirName, bits))
}

// SaveSafePrime saves a generated safe prime p of the given bit size to a
// fixture file.
func SaveSafePrime(p *BigInt.Nat, bits int) error {
	q := new(BigInt.Nat).Sub(p, new(BigInt.Nat).SetUint64(1), -1)
	q.Rsh(q, 1)
	fixture := SafePrimeFixture{
		Bits: bits,
		P:    p.MarshalNat(),
		Q:    q.MarshalNat(),
	}
	marshalled, err := cbor.Marshal(&fixture)
	if err != nil {
		log.Errorf("fail to marshal safe prime fixture, err is %v", err)
		return err
	}
	return WriteFixtureFile(marshalled, makeSafePrimeFixturePath(bits))
}

// LoadSafePrime loads a safe prime of the given bit size from its fixture
// file, returning p and q = (p - 1) / 2.
func LoadSafePrime(bits int) (p, q *BigInt.Nat, err error) {
	fileResult, err := ReadFixtureFile(makeSafePrimeFixturePath(bits))
	if err != nil {
		return nil, nil, err
	}
	var fixture SafePrimeFixture
	if err := cbor.Unmarshal(fileResult, &fixture); err != nil {
		return nil, nil, err
	}
	if fixture.Bits != bits {
		return nil, nil, fmt.Errorf("fixture holds a %d bit prime, wanted %d bits", fixture.Bits, bits)
	}
	p = new(BigInt.Nat).UnmarshalNat(fixture.P)
	q = new(BigInt.Nat).UnmarshalNat(fixture.Q)
	return p, q, nil
}

// DeleteSafePrime deletes the fixture file for the given bit size.
func DeleteSafePrime(bits int) error {
	fixtureFileName := makeSafePrimeFixturePath(bits)
	err := os.Remove(fixtureFileName)
	if err != nil {
		log.Errorf("unable to delete fixture file %s", fixtureFileName)
		return err
	}
	log.Infof("done delete fixture file %s", fixtureFileName)
	return nil
}

// WriteFixtureFile saves the []byte type result to a file
// returns: error if any
func WriteFixtureFile(result []byte, fixtureFileName string) error {
	err := os.MkdirAll(path.Dir(fixtureFileName), 0755)
	if err != nil {
		log.Errorln(err)
	}
	// open file
	fd, err := os.OpenFile(fixtureFileName, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		log.Errorf("unable to open save file %s for writing", fixtureFileName)
		return err
	}

	_, err = fd.Write(result)
	if err != nil {
		log.Errorf("unable to write to save file %s", fixtureFileName)
		return err
	}
	// close file
	err = fd.Close()
	if err != nil {
		log.Errorf("unable to close save file %s", fixtureFileName)
		return err
	}
	log.Infof("done wrote save file %s", fixtureFileName)

	return nil
}

// ReadFixtureFile reads a previously saved fixture file
// returns: []byte, error
func ReadFixtureFile(fixtureFileName string) ([]byte, error) {
	result, err := os.ReadFile(fixtureFileName)
	if err != nil {
		log.Errorf("unable to read save file %s", fixtureFileName)
		return nil, err
	}
	log.Infof("done read save file %s", fixtureFileName)
	return result, nil
}
