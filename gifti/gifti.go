/*
Package gifti reads and writes triangulated surfaces in a minimal GIfTI
1.0 container: a POINTSET array of float32 vertex coordinates, a TRIANGLE
array of int32 face indices, and optionally a VECTOR array of per-vertex
normals, each GZip+Base64 encoded in little-endian row-major order. This
covers the surface files exchanged with the forward-model toolchain;
metadata, coordinate system transforms and non-surface intents are out of
scope.
*/
package gifti

import (
	"bytes"
	"compress/gzip"
	"encoding/base64"
	"encoding/binary"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/notargets/cortsurf/surface"
)

const (
	intentPointset = "NIFTI_INTENT_POINTSET"
	intentTriangle = "NIFTI_INTENT_TRIANGLE"
	intentVector   = "NIFTI_INTENT_VECTOR"

	dataTypeFloat32 = "NIFTI_TYPE_FLOAT32"
	dataTypeInt32   = "NIFTI_TYPE_INT32"
)

type giftiDoc struct {
	XMLName            xml.Name    `xml:"GIFTI"`
	Version            string      `xml:"Version,attr"`
	NumberOfDataArrays int         `xml:"NumberOfDataArrays,attr"`
	DataArrays         []dataArray `xml:"DataArray"`
}

type dataArray struct {
	Intent             string `xml:"Intent,attr"`
	DataType           string `xml:"DataType,attr"`
	ArrayIndexingOrder string `xml:"ArrayIndexingOrder,attr"`
	Dimensionality     int    `xml:"Dimensionality,attr"`
	Dim0               int    `xml:"Dim0,attr"`
	Dim1               int    `xml:"Dim1,attr"`
	Encoding           string `xml:"Encoding,attr"`
	Endian             string `xml:"Endian,attr"`
	Data               string `xml:"Data"`
}

func encodeArray(words []uint32) (encoded string, err error) {
	raw := make([]byte, 4*len(words))
	for i, w := range words {
		binary.LittleEndian.PutUint32(raw[4*i:], w)
	}
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err = zw.Write(raw); err != nil {
		return
	}
	if err = zw.Close(); err != nil {
		return
	}
	encoded = base64.StdEncoding.EncodeToString(buf.Bytes())
	return
}

func decodeArray(da dataArray) (words []uint32, err error) {
	if da.Encoding != "GZipBase64Binary" {
		err = fmt.Errorf("unsupported DataArray encoding %q", da.Encoding)
		return
	}
	if da.Endian != "LittleEndian" {
		err = fmt.Errorf("unsupported DataArray endianness %q", da.Endian)
		return
	}
	compressed, err := base64.StdEncoding.DecodeString(da.Data)
	if err != nil {
		return
	}
	zr, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return
	}
	raw, err := io.ReadAll(zr)
	if err != nil {
		return
	}
	if err = zr.Close(); err != nil {
		return
	}
	want := da.Dim0 * da.Dim1 * 4
	if len(raw) != want {
		err = fmt.Errorf("%s array has %d bytes, header says %d",
			da.Intent, len(raw), want)
		return
	}
	words = make([]uint32, da.Dim0*da.Dim1)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(raw[4*i:])
	}
	return
}

func floatArray(intent string, rows [][3]float64) (da dataArray, err error) {
	words := make([]uint32, 0, 3*len(rows))
	for _, r := range rows {
		for _, v := range r {
			words = append(words, math.Float32bits(float32(v)))
		}
	}
	data, err := encodeArray(words)
	if err != nil {
		return
	}
	da = dataArray{
		Intent:             intent,
		DataType:           dataTypeFloat32,
		ArrayIndexingOrder: "RowMajorOrder",
		Dimensionality:     2,
		Dim0:               len(rows),
		Dim1:               3,
		Encoding:           "GZipBase64Binary",
		Endian:             "LittleEndian",
		Data:               data,
	}
	return
}

// Write stores the mesh at filename, with a normals array only when the
// mesh carries normals.
func Write(filename string, m *surface.Mesh) (err error) {
	doc := giftiDoc{Version: "1.0"}

	var da dataArray
	if da, err = floatArray(intentPointset, m.Vertices); err != nil {
		return
	}
	doc.DataArrays = append(doc.DataArrays, da)

	words := make([]uint32, 0, 3*m.NumFaces())
	for _, f := range m.Faces {
		words = append(words, uint32(int32(f[0])), uint32(int32(f[1])), uint32(int32(f[2])))
	}
	var data string
	if data, err = encodeArray(words); err != nil {
		return
	}
	doc.DataArrays = append(doc.DataArrays, dataArray{
		Intent:             intentTriangle,
		DataType:           dataTypeInt32,
		ArrayIndexingOrder: "RowMajorOrder",
		Dimensionality:     2,
		Dim0:               m.NumFaces(),
		Dim1:               3,
		Encoding:           "GZipBase64Binary",
		Endian:             "LittleEndian",
		Data:               data,
	})

	if m.HasNormals() {
		if da, err = floatArray(intentVector, m.Normals); err != nil {
			return
		}
		doc.DataArrays = append(doc.DataArrays, da)
	}
	doc.NumberOfDataArrays = len(doc.DataArrays)

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return
	}
	return os.WriteFile(filename, append([]byte(xml.Header), out...), 0644)
}

// Read loads a surface written by Write (or any GIfTI file restricted to
// the supported arrays). The mesh is validated on load: faces referencing
// vertices outside the POINTSET range are an error, never clamped.
func Read(filename string) (m *surface.Mesh, err error) {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return
	}
	var doc giftiDoc
	if err = xml.Unmarshal(raw, &doc); err != nil {
		return
	}
	var (
		vertices [][3]float64
		faces    [][3]int
		normals  [][3]float64
		haveV    bool
		haveF    bool
	)
	toRows := func(words []uint32) (rows [][3]float64) {
		rows = make([][3]float64, len(words)/3)
		for i := range rows {
			rows[i] = [3]float64{
				float64(math.Float32frombits(words[3*i])),
				float64(math.Float32frombits(words[3*i+1])),
				float64(math.Float32frombits(words[3*i+2])),
			}
		}
		return
	}
	for _, da := range doc.DataArrays {
		var words []uint32
		if words, err = decodeArray(da); err != nil {
			return
		}
		switch da.Intent {
		case intentPointset:
			vertices = toRows(words)
			haveV = true
		case intentVector:
			normals = toRows(words)
		case intentTriangle:
			faces = make([][3]int, len(words)/3)
			for i := range faces {
				faces[i] = [3]int{
					int(int32(words[3*i])),
					int(int32(words[3*i+1])),
					int(int32(words[3*i+2])),
				}
			}
			haveF = true
		default:
			err = fmt.Errorf("unsupported DataArray intent %q", da.Intent)
			return
		}
	}
	if !haveV || !haveF {
		err = fmt.Errorf("%s: not a surface file, need POINTSET and TRIANGLE arrays", filename)
		return
	}
	m, err = surface.NewMesh(vertices, faces, normals)
	if err != nil {
		err = fmt.Errorf("%s: %v", filename, err)
	}
	return
}
