package controllerv1

import (
	"io"
	"net/http"
	"runtime/debug"

	jsoniter "github.com/json-iterator/go"
	"github.com/metrico/kpiql/kpiql/shared"
	"github.com/metrico/kpiql/utils/logger"
)

const maxBodySize = 1 << 20

func tamePanic(w http.ResponseWriter, r *http.Request) {
	if err := recover(); err != nil {
		logger.Error("panic:", err, " stack:", string(debug.Stack()))
		logger.Error("query: ", r.URL.String())
		w.WriteHeader(500)
		w.Write([]byte("Internal Server Error"))
	}
}

func readJSON(w http.ResponseWriter, r *http.Request, target any) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		return err
	}
	return jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(body, target)
}

// KpiError writes the error envelope: {"status":"error","errorType":...,"error":...}.
func KpiError(code int, errorType string, msg string, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	json := jsoniter.ConfigFastest
	stream := json.BorrowStream(nil)
	defer json.ReturnStream(stream)

	stream.WriteObjectStart()
	stream.WriteObjectField("status")
	stream.WriteString("error")
	stream.WriteMore()

	stream.WriteObjectField("errorType")
	stream.WriteString(errorType)
	stream.WriteMore()

	stream.WriteObjectField("error")
	stream.WriteString(msg)
	stream.WriteObjectEnd()

	w.Write(stream.Buffer())
}

// CompileError writes err with the status code and kind of its compile error.
func CompileError(err error, w http.ResponseWriter) {
	KpiError(shared.ErrorCode(err), shared.ErrorKind(err), err.Error(), w)
}

func writeSuccess(data any, w http.ResponseWriter) {
	json := jsoniter.ConfigFastest
	stream := json.BorrowStream(nil)
	defer json.ReturnStream(stream)

	stream.WriteObjectStart()
	stream.WriteObjectField("status")
	stream.WriteString("success")
	stream.WriteMore()
	stream.WriteObjectField("data")
	stream.WriteVal(data)
	stream.WriteObjectEnd()
	if stream.Error != nil {
		KpiError(500, shared.KindInternal, stream.Error.Error(), w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(stream.Buffer())
}
