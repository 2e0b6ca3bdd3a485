package screen

import (
	"strconv"
	"strings"

	"github.com/ganot/unolims/internal/domain/analysis"
	"github.com/ganot/unolims/internal/domain/assay"
	"github.com/ganot/unolims/internal/domain/batch"
	"github.com/ganot/unolims/internal/domain/item"
	"github.com/ganot/unolims/internal/domain/reagent"
	"github.com/ganot/unolims/internal/domain/request"
	"github.com/ganot/unolims/internal/domain/requester"
	"github.com/ganot/unolims/internal/domain/stock"
)

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func withUnit(qty, unit string) string {
	return strings.TrimSpace(qty + " " + unit)
}

func requesterRow(r requester.Requester) Record {
	return Record{
		Fields: []Field{
			field("field.cnpj", r.CNPJ),
			field("field.nome", r.Name),
			field("field.cidade", r.City),
			field("field.estado", r.State),
			field("field.responsavel", r.Contact),
			field("field.telefone", r.Phone),
			field("field.email", r.Email),
		},
		Link: linkTo(RouteRequester, r.CNPJ),
	}
}

func requesterFull(r *requester.Requester) Record {
	return Record{Fields: []Field{
		field("field.cnpj", r.CNPJ),
		field("field.nome", r.Name),
		field("field.cep", r.PostalCode),
		field("field.endereco", r.Street),
		field("field.numero", r.Number),
		field("field.cidade", r.City),
		field("field.estado", r.State),
		field("field.responsavel", r.Contact),
		field("field.telefone", r.Phone),
		field("field.email", r.Email),
	}}
}

func requesterName(r *requester.Requester) string {
	if r == nil {
		return ""
	}
	if r.Name != "" {
		return r.Name
	}
	return r.CNPJ
}

func requestRow(r request.AnalysisRequest) Record {
	return Record{
		Fields: []Field{
			field("field.idSa", r.Code),
			field("field.nomeProjeto", r.ProjectName),
			field("field.tipoAnalise", r.AnalysisType),
			field("field.prazoAcordado", r.Deadline),
			field("field.conclusaoProjeto", r.CompletionLabel()),
			field("field.solicitante", requesterName(r.Requester)),
		},
		Link: linkTo(RouteRequest, r.Key()),
	}
}

func requestFull(r *request.AnalysisRequest) Record {
	return Record{Link: linkTo(RouteBatchNew, r.Key()), Fields: []Field{
		field("field.idSa", r.Code),
		field("field.nomeProjeto", r.ProjectName),
		field("field.tipoAnalise", r.AnalysisType),
		field("field.prazoAcordado", r.Deadline),
		field("field.conclusaoProjeto", r.CompletionLabel()),
		field("field.descricaoProjeto", r.Description),
		field("field.informacoesAdicionais", r.AdditionalInfo),
		field("field.modoEnvioResultado", r.DeliveryMode),
		field("field.responsavelAbertura", r.OpenedBy),
		field("field.solicitante", requesterName(r.Requester)),
	}}
}

func itemRow(it item.Item) Record {
	return Record{
		Fields: []Field{
			field("field.id", it.ID.String()),
			field("field.tipoMaterial", it.MaterialType),
			field("field.quantidade", withUnit(strconv.Itoa(it.Quantity), it.Unit)),
			field("field.lote", it.Lot),
			field("field.notaFiscal", it.Invoice),
			field("field.observacao", it.NoteLabel()),
			field("field.solicitacaoDeAnaliseId", it.RequestID.String()),
		},
		Link: linkTo(RouteItem, it.ID.String()),
	}
}

func itemFull(it *item.Item) Record {
	return Record{Link: linkTo(RouteItemQR, it.ID.String()), Fields: []Field{
		field("field.id", it.ID.String()),
		field("field.tipoMaterial", it.MaterialType),
		field("field.quantidade", withUnit(strconv.Itoa(it.Quantity), it.Unit)),
		field("field.quantidadeRecebida", withUnit(formatNumber(it.QuantityReceived), it.Unit)),
		field("field.quantidadeDisponivel", withUnit(formatNumber(it.QuantityAvailable), it.Unit)),
		field("field.lote", it.Lot),
		field("field.notaFiscal", it.Invoice),
		field("field.condicao", it.Condition),
		field("field.observacao", it.NoteLabel()),
	}}
}

func assayRow(a assay.Assay) Record {
	return Record{
		Fields: []Field{
			field("field.nomeEnsaio", a.Name),
			field("field.especificacao", a.Specification),
			field("field.itemDeAnaliseId", a.ItemID.String()),
			field("field.statusEnsaio", a.Status),
		},
		Link: linkTo(RouteItem, a.ItemID.String()),
	}
}

func batchRow(b batch.Batch) Record {
	return Record{
		Fields: []Field{
			field("field.id", b.ID.String()),
			field("field.amostra", b.Sample),
			field("field.notaFiscal", b.Invoice),
			field("field.dataEntrada", b.EntryDate),
			field("field.dataValidade", b.ExpiryDate),
			field("field.quantidade", strconv.Itoa(b.Quantity)),
		},
		Link: linkTo(RouteBatch, b.ID.String()),
	}
}

func batchFull(b *batch.Batch) Record {
	code := ""
	if b.Request != nil {
		code = b.Request.Code
	}
	return Record{
		Fields: []Field{
			field("field.id", b.ID.String()),
			field("field.amostra", b.Sample),
			field("field.notaFiscal", b.Invoice),
			field("field.dataEntrada", b.EntryDate),
			field("field.dataValidade", b.ExpiryDate),
			field("field.descricao", b.Description),
			field("field.quantidade", strconv.Itoa(b.Quantity)),
			field("field.solicitacaoAnalise", code),
		},
		Link: &Link{Route: RouteAnalysisNew, Params: Params{"id": b.ID.String()}},
	}
}

func analysisRow(a analysis.Analysis) Record {
	return Record{Fields: []Field{
		field("field.ensaio", a.Label()),
		field("field.especificacao", formatNumber(a.Specification)),
		field("field.resultado", formatNumber(a.Result)),
		field("field.unidade", a.Unit),
		field("field.observacao", a.Note),
	}}
}

func stockRow(s stock.Stock) Record {
	return Record{
		Fields: []Field{
			field("field.nome", s.Name),
			field("field.solicitante", requesterName(s.Requester)),
		},
		Link: linkTo(RouteStock, s.Name),
	}
}

func stockFull(s *stock.Stock) Record {
	return Record{
		Fields: []Field{
			field("field.nome", s.Name),
			field("field.solicitante", requesterName(s.Requester)),
		},
		Link: &Link{Route: RouteReagentNew, Params: Params{"id": s.Name}},
	}
}

func reagentRow(r reagent.Reagent) Record {
	return Record{Fields: []Field{
		field("field.nome", r.Name),
		field("field.quantidade", withUnit(formatNumber(r.Quantity), r.Unit)),
		field("field.dataValidade", r.ExpiryDate),
		field("field.fornecedor", r.Supplier),
		field("field.descricao", r.Description),
	}}
}
