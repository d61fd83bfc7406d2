/*
 *
 * Module:    BIG Modelling Tools
 * Package:   Generics
 * Component: JSON operations
 *
 * Thin wrappers around "github.com/wI2L/jsondiff" (creating RFC 6902 patches) and
 * "github.com/evanphx/json-patch" (applying them), working on raw JSON documents.
 * Test operations and document comparison work on decoded values rather than on JSON text.
 *
 * Author: Henderik A. Proper (e.proper@acm.org), TU Wien, Austria
 *
 * Version of: 18.10.2026
 *
 */

package generics

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strconv"
	"strings"

	"github.com/evanphx/json-patch"
	"github.com/pkg/errors"
	"github.com/wI2L/jsondiff"
)

const (
	operationAdd     = "add"
	operationReplace = "replace"
	operationTest    = "test"

	rootPointer = ""
)

type (
	// The jsondiff options that can be switched on through the configuration
	TDiffOptions struct {
		Factorize   bool // Use move and copy operations where possible
		Rationalize bool // Replace a whole object when that is shorter than its changes
		Invertible  bool // Precede remove and replace operations with a test operation
		Equivalent  bool // Treat arrays with the same elements in another order as equal
		LCS         bool // Compare arrays using the longest common subsequence
	}

	tPatchOperation struct {
		Operation string          `json:"op"`
		Path      string          `json:"path"`
		Value     json.RawMessage `json:"value"`
	}
)

var emptyPatch = json.RawMessage("[]")

func (o TDiffOptions) jsondiffOptions() []jsondiff.Option {
	options := []jsondiff.Option{}

	if o.Factorize {
		options = append(options, jsondiff.Factorize())
	}
	if o.Rationalize {
		options = append(options, jsondiff.Rationalize())
	}
	if o.Invertible {
		options = append(options, jsondiff.Invertible())
	}
	if o.Equivalent {
		options = append(options, jsondiff.Equivalent())
	}
	if o.LCS {
		options = append(options, jsondiff.LCS())
	}

	return options
}

// Read the diff options from the [patches] section of the config data
func DiffOptionsFromConfig(configData *TConfigData) TDiffOptions {
	return TDiffOptions{
		Factorize:   configData.GetValue("patches", "factorize").Bool(),
		Rationalize: configData.GetValue("patches", "rationalize").Bool(),
		Invertible:  configData.GetValue("patches", "invertible").Bool(),
		Equivalent:  configData.GetValue("patches", "equivalent").Bool(),
		LCS:         configData.GetValue("patches", "lcs").Bool(),
	}
}

// Create the RFC 6902 patch turning the source into the target. Equal documents give the empty patch.
func JSONDiff(sourceJSON, targetJSON []byte, options TDiffOptions) (json.RawMessage, error) {
	deltaOperations, err := jsondiff.CompareJSON(sourceJSON, targetJSON, options.jsondiffOptions()...)
	if err != nil {
		return nil, err
	}

	if len(deltaOperations) == 0 {
		return emptyPatch, nil
	}

	escapedJSON, err := json.Marshal(deltaOperations)
	if err != nil {
		return nil, err
	}

	// Re-encode the operations, so values keep characters such as < and & as they are
	decoder := json.NewDecoder(bytes.NewReader(escapedJSON))
	decoder.UseNumber()

	operations := []any{}
	if err := decoder.Decode(&operations); err != nil {
		return nil, err
	}

	buffer := bytes.Buffer{}
	encoder := json.NewEncoder(&buffer)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(operations); err != nil {
		return nil, err
	}

	return bytes.TrimSuffix(buffer.Bytes(), []byte("\n")), nil
}

// Apply an RFC 6902 patch to the source document.
// Test operations are evaluated here, comparing values rather than their JSON text.
func JSONApplyPatch(sourceJSON, patchJSON []byte) (json.RawMessage, error) {
	sourceJSON = bytes.TrimSpace(sourceJSON)
	if len(sourceJSON) == 0 {
		return nil, errors.New("cannot apply a patch to an empty document")
	}

	// The patch library addresses values inside objects and arrays only
	if newJSON, isRootPatch, err := applyRootPatch(sourceJSON, patchJSON); isRootPatch {
		return newJSON, err
	}

	patch, err := jsonpatch.DecodePatch(patchJSON)
	if err != nil {
		return nil, err
	}

	document := json.RawMessage(sourceJSON)
	pending := jsonpatch.Patch{}
	for _, operation := range patch {
		if operation.Kind() != operationTest {
			pending = append(pending, operation)
			continue
		}

		if document, err = applyOperations(document, pending); err != nil {
			return nil, err
		}
		pending = jsonpatch.Patch{}

		if err := testOperation(document, operation); err != nil {
			return nil, err
		}
	}

	return applyOperations(document, pending)
}

func applyOperations(documentJSON json.RawMessage, operations jsonpatch.Patch) (json.RawMessage, error) {
	if len(operations) == 0 {
		return documentJSON, nil
	}

	return operations.Apply(documentJSON)
}

// Check the value a test operation points at
func testOperation(documentJSON json.RawMessage, operation jsonpatch.Operation) error {
	pointer, err := operation.Path()
	if err != nil {
		return err
	}

	expectedJSON := json.RawMessage("null")
	if value := operation["value"]; value != nil {
		expectedJSON = *value
	}

	var document, expected any
	if err := json.Unmarshal(documentJSON, &document); err != nil {
		return err
	}
	if err := json.Unmarshal(expectedJSON, &expected); err != nil {
		return err
	}

	actual, err := valueAt(document, pointer)
	if err != nil {
		return err
	}

	if !reflect.DeepEqual(actual, expected) {
		return errors.Errorf("test operation on %q failed", pointer)
	}

	return nil
}

// The value a JSON pointer (RFC 6901) refers to in a decoded document
func valueAt(document any, pointer string) (any, error) {
	if pointer == rootPointer {
		return document, nil
	}

	if !strings.HasPrefix(pointer, "/") {
		return nil, errors.Errorf("invalid JSON pointer %q", pointer)
	}

	for _, token := range strings.Split(pointer[1:], "/") {
		token = strings.ReplaceAll(strings.ReplaceAll(token, "~1", "/"), "~0", "~")

		switch container := document.(type) {
		case map[string]any:
			value, defined := container[token]
			if !defined {
				return nil, errors.Errorf("no value at %q", pointer)
			}
			document = value
		case []any:
			index, err := strconv.Atoi(token)
			if err != nil || index < 0 || index >= len(container) {
				return nil, errors.Errorf("no value at %q", pointer)
			}
			document = container[index]
		default:
			return nil, errors.Errorf("no value at %q", pointer)
		}
	}

	return document, nil
}

// Apply a patch of which all operations address the document as a whole.
// Reports false when the patch has operations below the root.
func applyRootPatch(sourceJSON, patchJSON []byte) (json.RawMessage, bool, error) {
	operations := []tPatchOperation{}
	if err := json.Unmarshal(patchJSON, &operations); err != nil {
		return nil, true, err
	}

	if len(operations) == 0 {
		return nil, false, nil
	}
	for _, operation := range operations {
		if operation.Path != rootPointer {
			return nil, false, nil
		}
	}

	document := json.RawMessage(sourceJSON)
	for _, operation := range operations {
		switch operation.Operation {
		case operationAdd, operationReplace:
			document = operation.Value
		case operationTest:
			if !JSONEqual(document, operation.Value) {
				return nil, true, errors.Errorf("test operation on the document root failed")
			}
		default:
			return nil, true, errors.Errorf("unsupported operation %q on the document root", operation.Operation)
		}
	}

	return document, true, nil
}

// Structural equality of two JSON documents. Numbers are compared by value, so 3 equals 3.0.
func JSONEqual(aJSON, bJSON []byte) bool {
	var a, b any
	if json.Unmarshal(aJSON, &a) != nil || json.Unmarshal(bJSON, &b) != nil {
		return false
	}

	return reflect.DeepEqual(a, b)
}
